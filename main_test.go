package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"article-hand/content"
	"article-hand/models"
	"article-hand/providers"
	"article-hand/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeArticles struct {
	articles map[string]content.Article
	lastList services.ListParams
	failWith error
	created  []content.ArticlePayload
}

func (f *fakeArticles) Create(_ context.Context, p content.ArticlePayload) (services.WriteResult, error) {
	if err := content.Validate(p); err != nil {
		return services.WriteResult{}, err
	}
	if f.failWith != nil {
		return services.WriteResult{}, f.failWith
	}
	f.created = append(f.created, p)
	d := content.NewDecomposer(nil, nil)
	row := d.Article(p, "", content.GenerateSlug(p.Title))
	return services.WriteResult{Article: content.NewNormalizer(nil).BuildArticle(row, false)}, nil
}

func (f *fakeArticles) Update(_ context.Context, slug string, p content.ArticlePayload) (services.WriteResult, error) {
	if _, ok := f.articles[slug]; !ok {
		return services.WriteResult{}, services.ErrNotFound
	}
	if p.Version != 0 && p.Version != f.articles[slug].Version {
		return services.WriteResult{}, services.ErrVersionConflict
	}
	a := f.articles[slug]
	a.Title, a.Version = p.Title, a.Version+1
	return services.WriteResult{Article: a}, nil
}

func (f *fakeArticles) Get(_ context.Context, slug string) (content.Article, error) {
	if f.failWith != nil {
		return content.Article{}, f.failWith
	}
	a, ok := f.articles[slug]
	if !ok {
		return content.Article{}, services.ErrNotFound
	}
	return a, nil
}

func (f *fakeArticles) List(_ context.Context, params services.ListParams) (services.ListResult, error) {
	f.lastList = params
	return services.ListResult{
		Articles:   []content.Summary{{ID: "a1", Slug: "one", Title: "One"}},
		Pagination: services.Pagination{Page: 1, Limit: 20, Total: 1, TotalPages: 1},
	}, nil
}

func (f *fakeArticles) Delete(_ context.Context, slug string) error {
	if _, ok := f.articles[slug]; !ok {
		return services.ErrNotFound
	}
	delete(f.articles, slug)
	return nil
}

type fakeImages struct {
	got providers.ImageUpload
	err error
}

func (f *fakeImages) Upload(_ context.Context, in providers.ImageUpload) (providers.UploadResult, error) {
	f.got = in
	if f.err != nil {
		return providers.UploadResult{}, f.err
	}
	return providers.UploadResult{
		URL:      "https://cdn.example.com/articles/hero/x.jpg",
		PublicID: "articles/hero/x",
		Variants: map[string]string{"original": "https://cdn.example.com/articles/hero/x.jpg"},
		Metadata: providers.ImageMetadata{Width: 1920, Height: 1080, Format: "jpeg", Preset: "hero"},
	}, nil
}

func sampleArticle() content.Article {
	text := "Vitamin C brightens skin"
	row := models.Article{ID: "a1", Title: "Serum", Slug: "serum", Version: 2, Sections: []models.Section{{
		ID: "s1", Title: "Intro", Blocks: []models.Block{{ID: "b1", Type: "paragraph", Content: &text, SectionID: "s1"}},
	}}}
	return content.NewNormalizer(nil).BuildArticle(row, false)
}

func newTestRouter(articles *fakeArticles, images *fakeImages, dev bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return newRouter(routerDeps{Articles: articles, Images: images, Dev: dev, Log: zap.NewNop()})
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestGetArticleBySlug(t *testing.T) {
	r := newTestRouter(&fakeArticles{articles: map[string]content.Article{"serum": sampleArticle()}}, &fakeImages{}, false)

	w, body := doJSON(t, r, http.MethodGet, "/articles?slug=serum", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	article := body["article"].(map[string]any)
	assert.Equal(t, "serum", article["slug"])
	assert.Equal(t, float64(4), article["wordCount"])

	blocks := article["blocks"].([]any)
	require.Len(t, blocks, 1)
	flat := blocks[0].(map[string]any)
	assert.Equal(t, "Intro", flat["sectionTitle"])
	assert.Contains(t, flat, "faqItems")
	assert.Contains(t, flat, "rating")

	w, body = doJSON(t, r, http.MethodGet, "/articles?slug=missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Article not found", body["message"])
}

func TestListArticles(t *testing.T) {
	articles := &fakeArticles{}
	r := newTestRouter(articles, &fakeImages{}, false)

	w, body := doJSON(t, r, http.MethodGet, "/articles?page=2&limit=5&category=skin&search=serum&userId=u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.ListParams{Page: 2, Limit: 5, CategoryID: "skin", Search: "serum", UserID: "u1"}, articles.lastList)
	assert.Len(t, body["articles"], 1)
	assert.Equal(t, float64(1), body["pagination"].(map[string]any)["totalPages"])

	_, _ = doJSON(t, r, http.MethodGet, "/articles?page=abc", nil)
	assert.Equal(t, 0, articles.lastList.Page)
}

func TestCreateArticle(t *testing.T) {
	articles := &fakeArticles{}
	r := newTestRouter(articles, &fakeImages{}, false)

	payload := map[string]any{
		"title":  "Best Vitamin C Serum!!",
		"userId": "u1",
		"sections": []any{map[string]any{
			"title":  "Intro",
			"blocks": []any{map[string]any{"type": "heading", "content": "Hi", "level": 7}},
		}},
	}
	w, body := doJSON(t, r, http.MethodPost, "/articles", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	article := body["article"].(map[string]any)
	assert.Equal(t, "best-vitamin-c-serum", article["slug"])
	flat := article["blocks"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(3), flat["level"])
	require.Len(t, articles.created, 1)
}

func TestCreateArticle_ValidationErrors(t *testing.T) {
	r := newTestRouter(&fakeArticles{}, &fakeImages{}, false)

	w, body := doJSON(t, r, http.MethodPost, "/articles", map[string]any{"title": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", body["message"])
	assert.Len(t, body["errors"], 3)

	req := httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateArticle_Conflict(t *testing.T) {
	r := newTestRouter(&fakeArticles{failWith: fmt.Errorf("%w: x", services.ErrSlugConflict)}, &fakeImages{}, false)

	w, _ := doJSON(t, r, http.MethodPost, "/articles", map[string]any{
		"title": "T", "userId": "u", "sections": []any{map[string]any{"title": "s"}},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateArticle(t *testing.T) {
	r := newTestRouter(&fakeArticles{articles: map[string]content.Article{"serum": sampleArticle()}}, &fakeImages{}, false)
	body := map[string]any{"title": "New", "userId": "u", "version": 2, "sections": []any{map[string]any{"title": "s"}}}

	w, out := doJSON(t, r, http.MethodPut, "/articles/serum", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), out["article"].(map[string]any)["version"])

	body["version"] = 1
	w, _ = doJSON(t, r, http.MethodPut, "/articles/serum", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = doJSON(t, r, http.MethodPut, "/articles/missing", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteArticle(t *testing.T) {
	r := newTestRouter(&fakeArticles{articles: map[string]content.Article{"serum": sampleArticle()}}, &fakeImages{}, false)

	w, body := doJSON(t, r, http.MethodDelete, "/articles/serum", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	w, _ = doJSON(t, r, http.MethodDelete, "/articles/serum", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInternalErrorDetails(t *testing.T) {
	boom := errors.New("connection refused")
	articles := &fakeArticles{failWith: boom}

	_, body := doJSON(t, newTestRouter(articles, &fakeImages{}, false), http.MethodGet, "/articles?slug=x", nil)
	assert.NotContains(t, body, "error")

	w, body := doJSON(t, newTestRouter(articles, &fakeImages{}, true), http.MethodGet, "/articles?slug=x", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "connection refused", body["error"])
}

func multipartUpload(t *testing.T, preset string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("preset", preset))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadImage(t *testing.T) {
	images := &fakeImages{}
	r := newTestRouter(&fakeArticles{}, images, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartUpload(t, "hero", []byte("png-bytes")))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hero", images.got.Preset)
	assert.Equal(t, "photo.png", images.got.Filename)
	assert.Equal(t, []byte("png-bytes"), images.got.Data)

	var res providers.UploadResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "articles/hero/x", res.PublicID)
	assert.Equal(t, 1920, res.Metadata.Width)
}

func TestUploadImage_Errors(t *testing.T) {
	r := newTestRouter(&fakeArticles{}, &fakeImages{err: fmt.Errorf("%w: nope", providers.ErrInvalidImage)}, false)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartUpload(t, "", []byte("x")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	r = newTestRouter(&fakeArticles{}, &fakeImages{err: fmt.Errorf("%w: 503", providers.ErrUpstream)}, false)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartUpload(t, "", []byte("x")))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/uploads/images", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ok := newRouter(routerDeps{Articles: &fakeArticles{}, Images: &fakeImages{}, Log: zap.NewNop(),
		Health: func(context.Context) error { return nil }})
	w, _ := doJSON(t, ok, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	down := newRouter(routerDeps{Articles: &fakeArticles{}, Images: &fakeImages{}, Log: zap.NewNop(),
		Health: func(context.Context) error { return errors.New("db down") }})
	w, _ = doJSON(t, down, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	ok.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
