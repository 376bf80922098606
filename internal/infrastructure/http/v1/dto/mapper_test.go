package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/domain"
	"catalog/internal/domain/catalog/brand"
	"catalog/internal/domain/catalog/item"
	"catalog/internal/domain/catalog/itemtype"
)

func newTestMapper() *Mapper {
	return NewMapper(URLPictureResolver{Host: "http://www.alevelwebsite.com/", ImgURL: "/assets/images/"})
}

func hoodie() item.Item {
	picture := "1.png"
	return item.Item{
		ID:                1,
		Name:              ".NET Bot Black Hoodie",
		Description:       ".NET Bot Black Hoodie",
		Price:             decimal.RequireFromString("19.5"),
		PictureFileName:   &picture,
		CatalogTypeID:     2,
		CatalogType:       &itemtype.Type{ID: 2, Type: "T-Shirt"},
		CatalogBrandID:    2,
		CatalogBrand:      &brand.Brand{ID: 2, Brand: ".NET"},
		AvailableStock:    100,
		RestockThreshold:  10,
		MaxStockThreshold: 200,
		OnReorder:         true,
	}
}

func TestMapper_ItemRoundTrip(t *testing.T) {
	m := newTestMapper()
	for _, it := range []item.Item{hoodie(), {ID: 2, Name: "bare", Price: decimal.Zero}} {
		assert.Equal(t, it, m.DTOToItem(m.ItemToDTO(it)))
	}
}

func TestMapper_BrandAndTypeRoundTrip(t *testing.T) {
	m := newTestMapper()
	b := brand.Brand{ID: 5, Brand: "Other"}
	ty := itemtype.Type{ID: 4, Type: "USB Memory Stick"}

	assert.Equal(t, b, m.DTOToBrand(m.BrandToDTO(b)))
	assert.Equal(t, ty, m.DTOToType(m.TypeToDTO(ty)))
}

func TestMapper_PictureURL(t *testing.T) {
	m := newTestMapper()

	d := m.ItemToDTO(hoodie())
	assert.Equal(t, "http://www.alevelwebsite.com/assets/images/1.png", d.PictureURL)

	bare := m.ItemToDTO(item.Item{ID: 3})
	assert.Empty(t, bare.PictureURL)
	assert.Nil(t, bare.CatalogBrand)

	assert.Empty(t, NewMapper(nil).ItemToDTO(hoodie()).PictureURL)
}

func TestURLPictureResolver(t *testing.T) {
	assert.Equal(t, "img/a.png", URLPictureResolver{ImgURL: "img"}.PictureURL("a.png"))
	assert.Equal(t, "", URLPictureResolver{Host: "h"}.PictureURL(""))
}

func TestMapper_PageAndSlicesNeverNull(t *testing.T) {
	m := newTestMapper()

	page := m.PageToDTO(domain.Page[item.Item]{PageIndex: 3, PageSize: 10, Count: 12})
	body, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pageIndex":3,"pageSize":10,"count":12,"data":[]}`, string(body))

	body, err = json.Marshal(m.BrandsToDTO(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}

func TestCatalogItemDto_JSON(t *testing.T) {
	body, err := json.Marshal(newTestMapper().ItemToDTO(hoodie()))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, 19.5, raw["price"])
	assert.Equal(t, "1.png", raw["pictureFileName"])
	assert.Equal(t, ".NET", raw["catalogBrand"].(map[string]any)["brand"])
}

func TestItemRequest_AcceptsNumericAndQuotedPrice(t *testing.T) {
	var a, b ItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","price":12.5}`), &a))
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","price":"12.5"}`), &b))

	assert.True(t, a.Price.Equal(b.Price))
	assert.Equal(t, "x", newTestMapper().RequestToItem(a).Name)
}
