package model

import (
	"time"

	"github.com/shopspring/decimal"

	"study-notes-backend/internal/domain"
)

type ItemType string

const (
	ItemTypeCombo ItemType = "combo"
	ItemTypePDF   ItemType = "pdf"
)

type AccessType string

const (
	AccessFree AccessType = "Free"
	AccessPaid AccessType = "Paid"
)

// Subject is the top level of the catalog tree (subject -> topic -> folder -> pdf).
type Subject struct {
	ID        string
	Name      string
	Position  int
	CreatedAt time.Time
}

type Topic struct {
	ID        string
	SubjectID string
	Name      string
	Position  int
	CreatedAt time.Time
}

type Folder struct {
	ID        string
	TopicID   string
	Name      string
	Position  int
	CreatedAt time.Time
}

// PdfDocument is a single sellable (or free) note set.
type PdfDocument struct {
	ID         string
	FolderID   string
	Name       string
	FileURL    string
	AccessType AccessType
	Price      decimal.Decimal // INR; meaningful only when AccessType is Paid
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Combo bundles multiple PDFs under one price.
type Combo struct {
	ID         string
	Name       string
	PdfIDs     []string
	AccessType AccessType
	Price      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Item is the purchasable view the payment flow works with, independent of
// whether the underlying entity is a combo or a single PDF.
type Item struct {
	ID         string
	Type       ItemType
	Name       string
	AccessType AccessType
	Price      decimal.Decimal
}

// Purchasable reports whether a payment flow may be started for the item.
// Free items bypass payments entirely and are always considered owned.
func (it Item) Purchasable() error {
	if it.ID == "" || it.Name == "" {
		return domain.ErrValidation
	}
	if it.AccessType != AccessPaid {
		return domain.ErrItemNotPurchasable
	}
	if !it.Price.IsPositive() {
		return domain.ErrValidation
	}
	return nil
}

func (d *PdfDocument) Item() Item {
	return Item{ID: d.ID, Type: ItemTypePDF, Name: d.Name, AccessType: d.AccessType, Price: d.Price}
}

func (c *Combo) Item() Item {
	return Item{ID: c.ID, Type: ItemTypeCombo, Name: c.Name, AccessType: c.AccessType, Price: c.Price}
}
