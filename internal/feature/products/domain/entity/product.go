// Package entity defines the domain models for the products feature.
package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Product is an item of the catalog with its price and available stock.
// Price is kept in integer cents so that the two-decimal format survives
// every storage engine unchanged.
type Product struct {
	ID         uint      `gorm:"primaryKey"`
	Name       string    `gorm:"size:255;not null"`
	PriceCents int64     `gorm:"column:price_cents;not null"`
	Stock      int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// Price returns the price formatted with two decimals, e.g. "2.26".
func (p Product) Price() string {
	return FormatPrice(p.PriceCents)
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// FormatPrice renders cents as a fixed two-decimal amount.
func FormatPrice(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// ParsePrice converts a "units.cents" amount into cents.
// The input must already match the two-decimal format.
func ParsePrice(s string) (int64, error) {
	units, cents, ok := strings.Cut(s, ".")
	if !ok || len(cents) != 2 || units == "" {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	u, err := strconv.ParseInt(units, 10, 64)
	if err != nil || u < 0 {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	c, err := strconv.ParseInt(cents, 10, 64)
	if err != nil || c < 0 {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	if u > (math.MaxInt64-c)/100 {
		return 0, fmt.Errorf("price %q out of range", s)
	}
	return u*100 + c, nil
}
