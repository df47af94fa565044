package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nayxus/nayxus-stock/internal/application/catalog"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"minusculas", "Fruits", "fruits"},
		{"acentos plegados", "Catégorie Général", "categorie-general"},
		{"no alfanumerico colapsa", "Thé & Café!!", "the-cafe"},
		{"espacios multiples", "Produits   Laitiers", "produits-laitiers"},
		{"guiones en bordes", "  --Épices--  ", "epices"},
		{"digitos conservados", "Top 10 Ventes", "top-10-ventes"},
		{"vacio", "", ""},
		{"solo simbolos", "!!!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, catalog.Slugify(tc.in))
		})
	}
}
