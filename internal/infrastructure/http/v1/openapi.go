package v1

import (
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"catalog/internal/domain/catalog"
	"catalog/internal/infrastructure/http/v1/middleware"
)

// APITitle names the API in the document and the UI.
const APITitle = "Catalog HTTP API"

const securitySchemeName = "oauth2"

var (
	readScopes  = []string{middleware.ScopeCatalogBFF, middleware.ScopeCatalog}
	writeScopes = []string{middleware.ScopeCatalog}
)

// openAPIBuilder assembles the document. Component schemas are registered
// before anything references them so every $ref carries its resolved value.
type openAPIBuilder struct {
	doc *openapi3.T
}

// NewOpenAPIDocument describes every catalog endpoint. authority is the
// token issuer base URL.
func NewOpenAPIDocument(authority, pathBase string) *openapi3.T {
	authority = strings.TrimRight(authority, "/")

	b := &openAPIBuilder{doc: &openapi3.T{
		OpenAPI: "3.0.1",
		Info: &openapi3.Info{
			Title:       APITitle,
			Description: "Catalog items, brands and types.",
			Version:     "v1",
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
			SecuritySchemes: openapi3.SecuritySchemes{
				securitySchemeName: &openapi3.SecuritySchemeRef{Value: &openapi3.SecurityScheme{
					Type: "oauth2",
					Flows: &openapi3.OAuthFlows{Implicit: &openapi3.OAuthFlow{
						AuthorizationURL: authority + "/connect/authorize",
						Scopes: map[string]string{
							middleware.ScopeCatalog:    "Catalog API",
							middleware.ScopeCatalogBFF: "Catalog API (read-only, backend for frontend)",
						},
					}},
				}},
			},
		},
	}}
	if pathBase != "" {
		b.doc.Servers = openapi3.Servers{{URL: pathBase}}
	}
	b.registerSchemas()

	// Reads.
	b.add(http.MethodGet, "/catalog/items", readScopes, &openapi3.Operation{
		Summary: "Page through items, optionally filtered by brand and type",
		Parameters: openapi3.Parameters{
			queryInt("pageIndex", 0),
			queryInt("pageSize", catalog.DefaultPageSize),
			arrayQuery("brandFilter"),
			arrayQuery("typeFilter"),
		},
	}, map[string]*openapi3.Response{
		"200": b.jsonResponse("One page of items", b.ref("CatalogItemDtoPage")),
		"400": b.errorResponse("Invalid paging parameters"),
	})
	b.add(http.MethodGet, "/catalog/items/{id}", readScopes, &openapi3.Operation{
		Summary:    "Get an item with its brand and type",
		Parameters: openapi3.Parameters{idParam()},
	}, map[string]*openapi3.Response{
		"200": b.jsonResponse("The item", b.ref("CatalogItemDto")),
		"400": b.errorResponse("Invalid id"),
		"404": b.errorResponse("No such item"),
	})
	b.add(http.MethodGet, "/catalog/items/withname/{name}", readScopes, &openapi3.Operation{
		Summary: "Find items whose name contains a string",
		Parameters: openapi3.Parameters{{Value: openapi3.NewPathParameter("name").
			WithSchema(openapi3.NewStringSchema())}},
	}, map[string]*openapi3.Response{
		"200": b.jsonResponse("Matching items", b.arrayOf("CatalogItemDto")),
	})
	b.add(http.MethodGet, "/catalog/products", readScopes, &openapi3.Operation{
		Summary: "List every item",
	}, map[string]*openapi3.Response{
		"200": b.jsonResponse("All items", b.arrayOf("CatalogItemDto")),
	})
	b.add(http.MethodGet, "/catalog/catalogbrands", readScopes, &openapi3.Operation{
		Summary: "List brands",
	}, map[string]*openapi3.Response{
		"200": b.jsonResponse("All brands", b.arrayOf("CatalogBrandDto")),
	})
	b.add(http.MethodGet, "/catalog/catalogbrands/{id}", readScopes, &openapi3.Operation{
		Summary:    "Get a brand",
		Parameters: openapi3.Parameters{idParam()},
	}, map[string]*openapi3.Response{
		"200": b.jsonResponse("The brand", b.ref("CatalogBrandDto")),
		"404": b.errorResponse("No such brand"),
	})
	b.add(http.MethodGet, "/catalog/catalogtypes", readScopes, &openapi3.Operation{
		Summary: "List item types",
	}, map[string]*openapi3.Response{
		"200": b.jsonResponse("All types", b.arrayOf("CatalogTypeDto")),
	})
	b.add(http.MethodGet, "/catalog/catalogtypes/{id}", readScopes, &openapi3.Operation{
		Summary:    "Get an item type",
		Parameters: openapi3.Parameters{idParam()},
	}, map[string]*openapi3.Response{
		"200": b.jsonResponse("The type", b.ref("CatalogTypeDto")),
		"404": b.errorResponse("No such type"),
	})

	// Writes.
	b.addWrites("/catalog/catalogbrands", "brand", "CreateBrandRequest", "UpdateBrandRequest")
	b.addWrites("/catalog/catalogtypes", "type", "CreateTypeRequest", "UpdateTypeRequest")
	b.addWrites("/catalog/items", "item", "ItemRequest", "ItemRequest")

	return b.doc
}

func (b *openAPIBuilder) addWrites(path, noun, createBody, updateBody string) {
	b.add(http.MethodPost, path, writeScopes, &openapi3.Operation{
		Summary:     "Create a " + noun,
		RequestBody: b.jsonBody(createBody),
	}, map[string]*openapi3.Response{
		"201": b.jsonResponse("Created; body carries the new id", b.ref("IdResponse")),
		"400": b.errorResponse("Validation failed"),
		"409": b.errorResponse("Duplicate name"),
	})
	b.add(http.MethodPut, path, writeScopes, &openapi3.Operation{
		Summary:     "Update a " + noun,
		RequestBody: b.jsonBody(updateBody),
	}, map[string]*openapi3.Response{
		"200": b.jsonResponse("Updated", b.ref("IdResponse")),
		"400": b.errorResponse("Validation failed"),
		"404": b.errorResponse("No such " + noun),
		"409": b.errorResponse("Duplicate name"),
	})
	b.add(http.MethodDelete, path+"/{id}", writeScopes, &openapi3.Operation{
		Summary:    "Delete a " + noun,
		Parameters: openapi3.Parameters{idParam()},
	}, map[string]*openapi3.Response{
		"204": openapi3.NewResponse().WithDescription("Deleted"),
		"404": b.errorResponse("No such " + noun),
		"409": b.errorResponse("Still referenced by items"),
	})
}

// add registers op under path and marks it protected by scopes.
func (b *openAPIBuilder) add(method, path string, scopes []string, op *openapi3.Operation, responses map[string]*openapi3.Response) {
	op.Tags = []string{"Catalog"}
	op.OperationID = operationID(method, path)
	op.Security = openapi3.NewSecurityRequirements().
		With(openapi3.NewSecurityRequirement().Authenticate(securitySchemeName, scopes...))

	responses["401"] = b.errorResponse("Missing or invalid bearer token")
	responses["403"] = b.errorResponse("Token lacks the required scope")
	opts := make([]openapi3.NewResponsesOption, 0, len(responses))
	for code, r := range responses {
		opts = append(opts, openapi3.WithName(code, r))
	}
	op.Responses = openapi3.NewResponses(opts...)

	b.doc.AddOperation(path, method, op)
}

func operationID(method, path string) string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(method))
	for _, seg := range strings.Split(path, "/") {
		seg = strings.Trim(seg, "{}")
		if seg == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(seg[:1]) + seg[1:])
	}
	return sb.String()
}

func (b *openAPIBuilder) ref(name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, b.doc.Components.Schemas[name].Value)
}

func (b *openAPIBuilder) arrayOf(name string) *openapi3.SchemaRef {
	s := openapi3.NewArraySchema()
	s.Items = b.ref(name)
	return s.NewRef()
}

func (b *openAPIBuilder) jsonBody(schema string) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchemaRef(b.ref(schema))}
}

func (b *openAPIBuilder) jsonResponse(desc string, s *openapi3.SchemaRef) *openapi3.Response {
	return openapi3.NewResponse().WithDescription(desc).WithJSONSchemaRef(s)
}

func (b *openAPIBuilder) errorResponse(desc string) *openapi3.Response {
	return b.jsonResponse(desc, b.ref("ErrorResponse"))
}

func idParam() *openapi3.ParameterRef {
	return &openapi3.ParameterRef{Value: openapi3.NewPathParameter("id").WithSchema(openapi3.NewInt32Schema())}
}

func queryInt(name string, def int) *openapi3.ParameterRef {
	return &openapi3.ParameterRef{Value: openapi3.NewQueryParameter(name).
		WithSchema(openapi3.NewInt32Schema().WithDefault(def))}
}

func arrayQuery(name string) *openapi3.ParameterRef {
	explode := true
	p := openapi3.NewQueryParameter(name).
		WithSchema(openapi3.NewArraySchema().WithItems(openapi3.NewInt32Schema()))
	p.Style = openapi3.SerializationForm
	p.Explode = &explode
	return &openapi3.ParameterRef{Value: p}
}

func (b *openAPIBuilder) registerSchemas() {
	str := func(max uint64) *openapi3.Schema {
		s := openapi3.NewStringSchema()
		s.MaxLength = &max
		return s
	}
	object := func(props map[string]*openapi3.Schema, required ...string) *openapi3.Schema {
		s := openapi3.NewObjectSchema().WithProperties(props)
		s.Required = required
		return s
	}
	itemProps := func() map[string]*openapi3.Schema {
		return map[string]*openapi3.Schema{
			"id":                openapi3.NewInt32Schema(),
			"name":              str(50),
			"description":       str(1000),
			"price":             openapi3.NewFloat64Schema(),
			"pictureFileName":   openapi3.NewStringSchema().WithNullable(),
			"catalogTypeId":     openapi3.NewInt32Schema(),
			"catalogBrandId":    openapi3.NewInt32Schema(),
			"availableStock":    openapi3.NewInt32Schema(),
			"restockThreshold":  openapi3.NewInt32Schema(),
			"maxStockThreshold": openapi3.NewInt32Schema(),
			"onReorder":         openapi3.NewBoolSchema(),
		}
	}
	set := func(name string, s *openapi3.Schema) {
		b.doc.Components.Schemas[name] = s.NewRef()
	}

	set("CatalogBrandDto", object(map[string]*openapi3.Schema{"id": openapi3.NewInt32Schema(), "brand": str(100)}))
	set("CatalogTypeDto", object(map[string]*openapi3.Schema{"id": openapi3.NewInt32Schema(), "type": str(100)}))

	itemDto := object(itemProps()).WithProperty("pictureUrl", openapi3.NewStringSchema())
	itemDto.Properties["catalogType"] = b.ref("CatalogTypeDto")
	itemDto.Properties["catalogBrand"] = b.ref("CatalogBrandDto")
	set("CatalogItemDto", itemDto)

	page := object(map[string]*openapi3.Schema{
		"pageIndex": openapi3.NewInt32Schema(),
		"pageSize":  openapi3.NewInt32Schema(),
		"count":     openapi3.NewInt64Schema(),
	})
	page.Properties["data"] = b.arrayOf("CatalogItemDto")
	set("CatalogItemDtoPage", page)

	set("CreateBrandRequest", object(map[string]*openapi3.Schema{"brand": str(100)}, "brand"))
	set("UpdateBrandRequest", object(map[string]*openapi3.Schema{"id": openapi3.NewInt32Schema(), "brand": str(100)}, "id", "brand"))
	set("CreateTypeRequest", object(map[string]*openapi3.Schema{"type": str(100)}, "type"))
	set("UpdateTypeRequest", object(map[string]*openapi3.Schema{"id": openapi3.NewInt32Schema(), "type": str(100)}, "id", "type"))
	set("ItemRequest", object(itemProps(), "name", "price", "catalogTypeId", "catalogBrandId"))
	set("IdResponse", object(map[string]*openapi3.Schema{"id": openapi3.NewInt32Schema()}))
	set("ErrorResponse", object(map[string]*openapi3.Schema{
		"code":    openapi3.NewStringSchema(),
		"message": openapi3.NewStringSchema(),
		"details": openapi3.NewObjectSchema(),
	}, "code", "message"))
}
