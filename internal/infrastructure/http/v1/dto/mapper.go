package dto

import (
	"strings"

	"catalog/internal/domain"
	"catalog/internal/domain/catalog/brand"
	"catalog/internal/domain/catalog/item"
	"catalog/internal/domain/catalog/itemtype"
)

// PictureResolver turns a stored picture file name into a public URL.
type PictureResolver interface {
	PictureURL(fileName string) string
}

// URLPictureResolver builds "<Host>/<ImgURL>/<fileName>".
type URLPictureResolver struct {
	Host   string
	ImgURL string
}

// PictureURL implements PictureResolver. An empty file name has no URL.
func (r URLPictureResolver) PictureURL(fileName string) string {
	if fileName == "" {
		return ""
	}
	parts := make([]string, 0, 3)
	if h := strings.TrimRight(r.Host, "/"); h != "" {
		parts = append(parts, h)
	}
	if p := strings.Trim(r.ImgURL, "/"); p != "" {
		parts = append(parts, p)
	}
	return strings.Join(append(parts, fileName), "/")
}

// Mapper converts between entities and DTOs. It has no side effects.
type Mapper struct {
	pictures PictureResolver
}

// NewMapper creates a mapper. A nil resolver leaves pictureUrl empty.
func NewMapper(pictures PictureResolver) *Mapper {
	return &Mapper{pictures: pictures}
}

func (m *Mapper) BrandToDTO(b brand.Brand) CatalogBrandDto {
	return CatalogBrandDto{ID: b.ID, Brand: b.Brand}
}

func (m *Mapper) DTOToBrand(d CatalogBrandDto) brand.Brand {
	return brand.Brand{ID: d.ID, Brand: d.Brand}
}

func (m *Mapper) TypeToDTO(t itemtype.Type) CatalogTypeDto {
	return CatalogTypeDto{ID: t.ID, Type: t.Type}
}

func (m *Mapper) DTOToType(d CatalogTypeDto) itemtype.Type {
	return itemtype.Type{ID: d.ID, Type: d.Type}
}

// ItemToDTO maps an item and computes its pictureUrl.
func (m *Mapper) ItemToDTO(it item.Item) CatalogItemDto {
	d := CatalogItemDto{
		ID:                it.ID,
		Name:              it.Name,
		Description:       it.Description,
		Price:             it.Price,
		PictureFileName:   it.PictureFileName,
		CatalogTypeID:     it.CatalogTypeID,
		CatalogBrandID:    it.CatalogBrandID,
		AvailableStock:    it.AvailableStock,
		RestockThreshold:  it.RestockThreshold,
		MaxStockThreshold: it.MaxStockThreshold,
		OnReorder:         it.OnReorder,
	}
	if it.PictureFileName != nil && m.pictures != nil {
		d.PictureURL = m.pictures.PictureURL(*it.PictureFileName)
	}
	if it.CatalogType != nil {
		t := m.TypeToDTO(*it.CatalogType)
		d.CatalogType = &t
	}
	if it.CatalogBrand != nil {
		b := m.BrandToDTO(*it.CatalogBrand)
		d.CatalogBrand = &b
	}
	return d
}

// DTOToItem maps a DTO back; PictureURL is ignored.
func (m *Mapper) DTOToItem(d CatalogItemDto) item.Item {
	it := item.Item{
		ID:                d.ID,
		Name:              d.Name,
		Description:       d.Description,
		Price:             d.Price,
		PictureFileName:   d.PictureFileName,
		CatalogTypeID:     d.CatalogTypeID,
		CatalogBrandID:    d.CatalogBrandID,
		AvailableStock:    d.AvailableStock,
		RestockThreshold:  d.RestockThreshold,
		MaxStockThreshold: d.MaxStockThreshold,
		OnReorder:         d.OnReorder,
	}
	if d.CatalogType != nil {
		t := m.DTOToType(*d.CatalogType)
		it.CatalogType = &t
	}
	if d.CatalogBrand != nil {
		b := m.DTOToBrand(*d.CatalogBrand)
		it.CatalogBrand = &b
	}
	return it
}

// RequestToItem maps a write request onto an item entity.
func (m *Mapper) RequestToItem(r ItemRequest) *item.Item {
	return &item.Item{
		ID:                r.ID,
		Name:              r.Name,
		Description:       r.Description,
		Price:             r.Price,
		PictureFileName:   r.PictureFileName,
		CatalogTypeID:     r.CatalogTypeID,
		CatalogBrandID:    r.CatalogBrandID,
		AvailableStock:    r.AvailableStock,
		RestockThreshold:  r.RestockThreshold,
		MaxStockThreshold: r.MaxStockThreshold,
		OnReorder:         r.OnReorder,
	}
}

func (m *Mapper) BrandsToDTO(brands []brand.Brand) []CatalogBrandDto {
	return mapSlice(brands, m.BrandToDTO)
}

func (m *Mapper) TypesToDTO(types []itemtype.Type) []CatalogTypeDto {
	return mapSlice(types, m.TypeToDTO)
}

func (m *Mapper) ItemsToDTO(items []item.Item) []CatalogItemDto {
	return mapSlice(items, m.ItemToDTO)
}

// PageToDTO maps an item page.
func (m *Mapper) PageToDTO(p domain.Page[item.Item]) PageResponse[CatalogItemDto] {
	return PageResponse[CatalogItemDto]{
		PageIndex: p.PageIndex,
		PageSize:  p.PageSize,
		Count:     p.Count,
		Data:      m.ItemsToDTO(p.Data),
	}
}

func mapSlice[S, D any](src []S, fn func(S) D) []D {
	out := make([]D, len(src))
	for i, v := range src {
		out[i] = fn(v)
	}
	return out
}
