package handlers

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SwaggerClientID is the OAuth2 client the UI authenticates as.
const SwaggerClientID = "catalogswaggerui"

//go:embed swagger/index.html swagger/oauth2-redirect.html
var swaggerAssets embed.FS

var swaggerIndex = template.Must(template.ParseFS(swaggerAssets, "swagger/index.html"))

// SwaggerHandler serves the OpenAPI document and the Swagger UI.
type SwaggerHandler struct {
	doc      []byte
	index    []byte
	redirect []byte
}

// NewSwaggerHandler renders the document and UI pages once. pathBase is the
// prefix the service is mounted under.
func NewSwaggerHandler(doc any, title, pathBase string) (*SwaggerHandler, error) {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}

	var index bytes.Buffer
	err = swaggerIndex.Execute(&index, map[string]string{
		"Title":       title,
		"SpecURL":     pathBase + "/swagger/v1/swagger.json",
		"RedirectURL": pathBase + "/swagger/oauth2-redirect.html",
		"ClientID":    SwaggerClientID,
	})
	if err != nil {
		return nil, fmt.Errorf("render swagger ui: %w", err)
	}

	redirect, err := swaggerAssets.ReadFile("swagger/oauth2-redirect.html")
	if err != nil {
		return nil, err
	}

	return &SwaggerHandler{doc: raw, index: index.Bytes(), redirect: redirect}, nil
}

// Document handles GET /swagger/v1/swagger.json.
func (h *SwaggerHandler) Document(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", h.doc)
}

// UI handles GET /swagger/index.html.
func (h *SwaggerHandler) UI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.index)
}

// OAuth2Redirect handles GET /swagger/oauth2-redirect.html.
func (h *SwaggerHandler) OAuth2Redirect(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.redirect)
}
