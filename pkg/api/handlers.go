// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/tomdalling/value-type/pkg/declaration"
	"github.com/tomdalling/value-type/pkg/defaults"
	cerrors "github.com/tomdalling/value-type/pkg/errors"
	"github.com/tomdalling/value-type/pkg/recipe"
	"github.com/tomdalling/value-type/pkg/schema"
	"github.com/tomdalling/value-type/pkg/serializer"
	"github.com/tomdalling/value-type/pkg/server"
)

// RecipeList is the response of GET /v1/recipes.
type RecipeList struct {
	Recipes []RecipeSummary `json:"recipes"`
}

// RecipeSummary names a recipe and its attributes in order.
type RecipeSummary struct {
	Name       string   `json:"name"`
	Extends    string   `json:"extends,omitempty"`
	Attributes []string `json:"attributes"`
}

// ConstructResponse is the response of POST /v1/instances.
type ConstructResponse struct {
	Recipe   string                              `json:"recipe"`
	Values   *orderedmap.OrderedMap[string, any] `json:"values"`
	Rendered string                              `json:"rendered"`
}

// Handler serves the recipes of one registry.
type Handler struct {
	reg     *declaration.Registry
	maxBody int64
}

// NewHandler returns a Handler for reg.
func NewHandler(reg *declaration.Registry) *Handler {
	return &Handler{reg: reg, maxBody: defaults.MaxDocumentBytes}
}

// Routes returns the application routes, for server.WithHandler.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/recipes":   h.HandleRecipes,
		"/v1/schema":    h.HandleSchema,
		"/v1/instances": h.HandleConstruct,
	}
}

// Ready fails while the registry holds no recipes, so an empty RecipeSet
// never receives traffic.
func (h *Handler) Ready(context.Context) error {
	if len(h.reg.Names()) == 0 {
		return errors.New("no recipes loaded")
	}
	return nil
}

// HandleRecipes handles GET /v1/recipes.
func (h *Handler) HandleRecipes(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	list := RecipeList{Recipes: make([]RecipeSummary, 0, len(h.reg.Names()))}
	for _, rec := range h.reg.Recipes() {
		s := RecipeSummary{Name: rec.Name(), Attributes: rec.Names()}
		if p := rec.Parent(); p != nil {
			s.Extends = p.Name()
		}
		list.Recipes = append(list.Recipes, s)
	}

	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, http.StatusOK, list)
}

// HandleSchema handles GET /v1/schema?recipe=NAME.
func (h *Handler) HandleSchema(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	rec, ok := h.lookup(w, r)
	if !ok {
		return
	}

	serializer.RespondJSON(w, http.StatusOK, schema.For(rec))
}

// HandleConstruct handles POST /v1/instances?recipe=NAME.
func (h *Handler) HandleConstruct(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	rec, ok := h.lookup(w, r)
	if !ok {
		return
	}

	values, err := h.readBody(r)
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, server.ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]any{
				"error": err.Error(),
			})
		return
	}

	inst, err := h.reg.Construct(declaration.InstanceSpec{Recipe: rec.Name(), Values: values})
	if err != nil {
		d := Detail(err)
		if d.Code == "" {
			d.Code = ErrCodeConstructionFailed
		}
		server.Logger(r.Context()).Debug("construction rejected", "reason", d.Message)
		server.WriteError(w, r, http.StatusUnprocessableEntity, d.Code, d.Message, false, d.Context)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, ConstructResponse{
		Recipe:   rec.Name(),
		Values:   inst.Ordered(),
		Rendered: inst.String(),
	})
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*recipe.Recipe, bool) {
	name := r.URL.Query().Get("recipe")
	if name == "" {
		server.WriteError(w, r, http.StatusBadRequest, server.ErrCodeInvalidRequest,
			"Missing recipe query parameter", false, nil)
		return nil, false
	}

	rec, ok := h.reg.Lookup(name)
	if !ok {
		server.WriteError(w, r, http.StatusNotFound, server.ErrCodeNotFound,
			fmt.Sprintf("unknown recipe %q", name), false, map[string]any{
				cerrors.ContextType: name,
				"available":         h.reg.Names(),
			})
		return nil, false
	}
	return rec, true
}

// readBody decodes a JSON or YAML mapping. An empty body yields nil.
func (h *Handler) readBody(r *http.Request) (map[string]any, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, h.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(data)) > h.maxBody {
		return nil, fmt.Errorf("body exceeds %d bytes", h.maxBody)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	reader, err := serializer.NewReader(serializer.FormatYAML, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var values map[string]any
	if err := reader.Deserialize(&values); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return values, nil
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	server.WriteError(w, r, http.StatusMethodNotAllowed, server.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{
			"method": r.Method,
		})
	return false
}
