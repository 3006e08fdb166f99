package content

// BlockType ist der Diskriminator eines Blocks.
type BlockType string

const (
	TypeParagraph      BlockType = "paragraph"
	TypeHeading        BlockType = "heading"
	TypeImage          BlockType = "image"
	TypeList           BlockType = "list"
	TypeQuote          BlockType = "quote"
	TypeCode           BlockType = "code"
	TypeCTA            BlockType = "cta"
	TypeRating         BlockType = "rating"
	TypeProsCons       BlockType = "pros-cons"
	TypeIngredients    BlockType = "ingredients"
	TypeBulletList     BlockType = "bullet-list"
	TypeFAQ            BlockType = "faq"
	TypeSpecifications BlockType = "specifications"
)

// BlockTypes enthält alle bekannten Blocktypen in Editor-Reihenfolge.
var BlockTypes = []BlockType{
	TypeParagraph, TypeHeading, TypeImage, TypeList, TypeQuote, TypeCode, TypeCTA,
	TypeRating, TypeProsCons, TypeIngredients, TypeBulletList, TypeFAQ, TypeSpecifications,
}

// Known meldet, ob der Typ zu den unterstützten Blocktypen gehört.
func (t BlockType) Known() bool {
	for _, known := range BlockTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ListType steuert die Darstellung eines list Blocks.
type ListType string

const (
	ListUnordered ListType = "unordered"
	ListOrdered   ListType = "ordered"
)

const (
	MinHeadingLevel     = 1
	MaxHeadingLevel     = 3
	DefaultHeadingLevel = 2
)

// Block ist ein normalisierter Inhaltsblock. Die typspezifischen Felder stecken in Data;
// paragraph, quote, code und unbekannte Typen haben kein Data (nil).
type Block struct {
	ID           string
	Type         BlockType
	Content      string
	Order        int
	SectionID    string
	CustomFields []CustomField
	Data         BlockData
}

// BlockData ist die geschlossene Menge der typspezifischen Block-Payloads.
type BlockData interface {
	blockType() BlockType
}

type CustomField struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ListItem ist ein einfacher geordneter Texteintrag (Pros, Cons, Zutaten, Highlights, Bullet Points).
type ListItem struct {
	ID      string `json:"id,omitempty"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// IngredientItem beschreibt eine Zutat; die Studienangaben sind optional.
type IngredientItem struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	StudyURL    string `json:"studyUrl,omitempty"`
	StudyTitle  string `json:"studyTitle,omitempty"`
	StudyYear   int    `json:"studyYear,omitempty"`
}

// Rating enthält die fünf Teilbewertungen. nil-Werte zählen nicht in Durchschnitte.
type Rating struct {
	ID            string   `json:"id,omitempty"`
	Ingredients   *float64 `json:"ingredients"`
	Value         *float64 `json:"value"`
	Manufacturer  *float64 `json:"manufacturer"`
	Safety        *float64 `json:"safety"`
	Effectiveness *float64 `json:"effectiveness"`
}

// Scores liefert die Teilbewertungen in fester Reihenfolge.
func (r *Rating) Scores() []*float64 {
	if r == nil {
		return nil
	}
	return []*float64{r.Ingredients, r.Value, r.Manufacturer, r.Safety, r.Effectiveness}
}

type FAQItem struct {
	ID       string `json:"id,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    int    `json:"order"`
}

type Specification struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Value string `json:"value"`
	Order int    `json:"order"`
}

type HeadingData struct {
	Level int
}

type ImageData struct {
	URL        string
	Caption    string
	Alt        string
	Responsive *ResponsiveSettings
}

type ListData struct {
	ListType ListType
}

type RatingData struct {
	ProductName string
	Rating      *Rating
	Highlights  []ListItem
}

type ProsConsData struct {
	Pros        []ListItem
	Cons        []ListItem
	Ingredients []ListItem
}

type IngredientsData struct {
	ProductName  string
	Introduction string
	Items        []IngredientItem
}

type CTAData struct {
	Text            string
	ButtonText      string
	ButtonLink      string
	BackgroundColor string
}

type FAQData struct {
	Items []FAQItem
}

type SpecificationsData struct {
	Items []Specification
}

type BulletListData struct {
	Points []BulletPoint
}

// BulletPoint ist ein Eintrag eines bullet-list Blocks.
type BulletPoint = ListItem

func (*HeadingData) blockType() BlockType        { return TypeHeading }
func (*ImageData) blockType() BlockType          { return TypeImage }
func (*ListData) blockType() BlockType           { return TypeList }
func (*RatingData) blockType() BlockType         { return TypeRating }
func (*ProsConsData) blockType() BlockType       { return TypeProsCons }
func (*IngredientsData) blockType() BlockType    { return TypeIngredients }
func (*CTAData) blockType() BlockType            { return TypeCTA }
func (*FAQData) blockType() BlockType            { return TypeFAQ }
func (*SpecificationsData) blockType() BlockType { return TypeSpecifications }
func (*BulletListData) blockType() BlockType     { return TypeBulletList }
