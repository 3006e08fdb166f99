package models

import "gorm.io/datatypes"

// Block ist der rohe Datensatz eines Inhaltsblocks, so wie er aus der Datenbank oder
// vom Editor kommt. Optionale Felder sind Pointer bzw. nil-Slices; erst der Normalizer
// macht daraus einen vollständig befüllten, typisierten Block.
type Block struct {
	ID        string  `json:"id" gorm:"type:uuid;primaryKey"`
	Type      string  `json:"type" gorm:"size:32;not null"`
	Content   *string `json:"content,omitempty" gorm:"type:text"`
	Order     *int    `json:"order,omitempty" gorm:"column:position;not null;default:0"`
	SectionID string  `json:"sectionId,omitempty" gorm:"type:uuid;index;not null"`

	// heading
	Level *int `json:"level,omitempty"`

	// image
	ImageURL     *string `json:"imageUrl,omitempty"`
	ImageCaption *string `json:"imageCaption,omitempty"`
	ImageAlt     *string `json:"imageAlt,omitempty"`
	// Versionierte Bildeinstellungen (ersetzt das alte responsiveSettings-CustomField)
	Responsive datatypes.JSON `json:"responsiveSettings,omitempty" gorm:"column:responsive_settings;type:jsonb"`

	// list
	ListType *string `json:"listType,omitempty" gorm:"size:16"`

	// rating / ingredients
	ProductName  *string `json:"productName,omitempty"`
	Introduction *string `json:"introduction,omitempty" gorm:"type:text"`

	// cta
	CTAText         *string `json:"ctaText,omitempty" gorm:"column:cta_text"`
	CTAButtonText   *string `json:"ctaButtonText,omitempty" gorm:"column:cta_button_text"`
	CTAButtonLink   *string `json:"ctaButtonLink,omitempty" gorm:"column:cta_button_link"`
	BackgroundColor *string `json:"backgroundColor,omitempty" gorm:"size:32"`

	// Untergeordnete Entitäten
	Rating          *Rating          `json:"rating,omitempty" gorm:"foreignKey:BlockID;constraint:OnDelete:CASCADE"`
	Highlights      []Highlight      `json:"highlights,omitempty" gorm:"foreignKey:BlockID;constraint:OnDelete:CASCADE"`
	Pros            []Pro            `json:"pros,omitempty" gorm:"foreignKey:BlockID;constraint:OnDelete:CASCADE"`
	Cons            []Con            `json:"cons,omitempty" gorm:"foreignKey:BlockID;constraint:OnDelete:CASCADE"`
	Ingredients     []Ingredient     `json:"ingredients,omitempty" gorm:"foreignKey:BlockID;constraint:OnDelete:CASCADE"`
	IngredientItems []IngredientItem `json:"ingredientItems,omitempty" gorm:"foreignKey:BlockID;constraint:OnDelete:CASCADE"`
	BulletPoints    []BulletPoint    `json:"bulletPoints,omitempty" gorm:"foreignKey:BlockID;constraint:OnDelete:CASCADE"`
	FAQItems        []FAQItem        `json:"faqItems,omitempty" gorm:"foreignKey:BlockID;constraint:OnDelete:CASCADE"`
	Specifications  []Specification  `json:"specifications,omitempty" gorm:"foreignKey:BlockID;constraint:OnDelete:CASCADE"`
	CustomFields    []CustomField    `json:"customFields,omitempty" gorm:"foreignKey:BlockID;constraint:OnDelete:CASCADE"`
}

func (Block) TableName() string {
	return "blocks"
}
