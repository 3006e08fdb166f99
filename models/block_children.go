package models

// OrderedText ist die gemeinsame Form einfacher, geordneter Textlisten (Pros, Cons, ...).
type OrderedText struct {
	ID      string `json:"id,omitempty" gorm:"type:uuid;primaryKey"`
	Content string `json:"content" gorm:"type:text"`
	Order   *int   `json:"order,omitempty" gorm:"column:position;not null;default:0"`
	BlockID string `json:"blockId,omitempty" gorm:"type:uuid;index;not null"`
}

type Pro struct{ OrderedText }

func (Pro) TableName() string { return "pros" }

type Con struct{ OrderedText }

func (Con) TableName() string { return "cons" }

// Ingredient gehört zu einem pros-cons Block (einfache Zutatenliste).
type Ingredient struct{ OrderedText }

func (Ingredient) TableName() string { return "ingredients" }

type Highlight struct{ OrderedText }

func (Highlight) TableName() string { return "highlights" }

type BulletPoint struct{ OrderedText }

func (BulletPoint) TableName() string { return "bullet_points" }

// CustomField ist ein offenes Name/Wert-Paar. Der Wert kann selbst ein JSON-Dokument sein.
type CustomField struct {
	ID      string `json:"id,omitempty" gorm:"type:uuid;primaryKey"`
	Name    string `json:"name" gorm:"index;not null"`
	Value   string `json:"value" gorm:"type:text"`
	BlockID string `json:"blockId,omitempty" gorm:"type:uuid;index;not null"`
}

func (CustomField) TableName() string { return "custom_fields" }

// IngredientItem beschreibt eine Zutat in einem ingredients Block, optional mit Studienangabe.
type IngredientItem struct {
	ID          string  `json:"id,omitempty" gorm:"type:uuid;primaryKey"`
	Name        string  `json:"name"`
	ImageURL    string  `json:"imageUrl"`
	Description string  `json:"description" gorm:"type:text"`
	Order       *int    `json:"order,omitempty" gorm:"column:position;not null;default:0"`
	StudyURL    *string `json:"studyUrl,omitempty"`
	StudyTitle  *string `json:"studyTitle,omitempty"`
	StudyYear   *int    `json:"studyYear,omitempty"`
	BlockID     string  `json:"blockId,omitempty" gorm:"type:uuid;index;not null"`
}

func (IngredientItem) TableName() string { return "ingredient_items" }

// Rating hält die fünf Teilbewertungen (0-5) eines rating Blocks. nil bedeutet "nicht bewertet".
type Rating struct {
	ID            string   `json:"id,omitempty" gorm:"type:uuid;primaryKey"`
	Ingredients   *float64 `json:"ingredients"`
	Value         *float64 `json:"value"`
	Manufacturer  *float64 `json:"manufacturer"`
	Safety        *float64 `json:"safety"`
	Effectiveness *float64 `json:"effectiveness"`
	BlockID       string   `json:"blockId,omitempty" gorm:"type:uuid;uniqueIndex;not null"`
}

func (Rating) TableName() string { return "ratings" }

type FAQItem struct {
	ID       string `json:"id,omitempty" gorm:"type:uuid;primaryKey"`
	Question string `json:"question" gorm:"type:text"`
	Answer   string `json:"answer" gorm:"type:text"`
	Order    *int   `json:"order,omitempty" gorm:"column:position;not null;default:0"`
	BlockID  string `json:"blockId,omitempty" gorm:"type:uuid;index;not null"`
}

func (FAQItem) TableName() string { return "faq_items" }

type Specification struct {
	ID      string `json:"id,omitempty" gorm:"type:uuid;primaryKey"`
	Name    string `json:"name"`
	Value   string `json:"value" gorm:"type:text"`
	Order   *int   `json:"order,omitempty" gorm:"column:position;not null;default:0"`
	BlockID string `json:"blockId,omitempty" gorm:"type:uuid;index;not null"`
}

func (Specification) TableName() string { return "specifications" }

// All listet alle Modelle in Migrationsreihenfolge.
func All() []any {
	return []any{
		&Article{}, &Section{}, &Block{},
		&Rating{}, &Highlight{}, &Pro{}, &Con{}, &Ingredient{},
		&IngredientItem{}, &BulletPoint{}, &FAQItem{}, &Specification{}, &CustomField{},
	}
}
