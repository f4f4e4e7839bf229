package api

import (
	"net/http"

	"github.com/phrazzld/contacts-api/internal/pipeline"
	"github.com/phrazzld/contacts-api/internal/schema"
	"github.com/phrazzld/contacts-api/internal/service"
	"github.com/phrazzld/contacts-api/internal/store"
)

// ContactHandler handles the /contacts endpoints. All of them require a
// valid access token.
type ContactHandler struct {
	contacts service.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contacts service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Schemas are built once and shared by every request to the route.
var (
	getContactSchemas = &schema.RouteSchemaSet{
		Params: schema.For[IndexParams](),
	}
	createContactSchemas = &schema.RouteSchemaSet{
		Body: schema.For[CreateContactRequest](),
	}
	updateContactSchemas = &schema.RouteSchemaSet{
		Params: schema.For[IndexParams](),
		Body:   schema.For[UpdateContactRequest](),
	}
)

// GetRoute handles GET /contacts/{index}.
func (h *ContactHandler) GetRoute() pipeline.Route {
	return pipeline.Route{
		Name:    "contacts/byIndex",
		Auth:    true,
		Schemas: getContactSchemas,
		Handler: h.get,
	}
}

// CreateRoute handles POST /contacts.
func (h *ContactHandler) CreateRoute() pipeline.Route {
	return pipeline.Route{
		Name:    "contacts/post",
		Auth:    true,
		Schemas: createContactSchemas,
		Handler: h.create,
	}
}

// UpdateRoute handles PUT /contacts/{index}.
func (h *ContactHandler) UpdateRoute() pipeline.Route {
	return pipeline.Route{
		Name:    "contacts/put",
		Auth:    true,
		Schemas: updateContactSchemas,
		Handler: h.update,
	}
}

func (h *ContactHandler) get(ex *pipeline.Exchange) (*pipeline.Response, error) {
	params, err := pipeline.BindParams[IndexParams](ex)
	if err != nil {
		return nil, err
	}

	contact, err := h.contacts.Get(ex.Context(), params.Index)
	if err != nil {
		return nil, err
	}
	return pipeline.JSON(http.StatusOK, contact), nil
}

func (h *ContactHandler) create(ex *pipeline.Exchange) (*pipeline.Response, error) {
	req, err := pipeline.Bind[CreateContactRequest](ex)
	if err != nil {
		return nil, err
	}

	created, err := h.contacts.Create(ex.Context(), req.ToDomain())
	if err != nil {
		return nil, err
	}
	return pipeline.JSON(http.StatusCreated, created), nil
}

func (h *ContactHandler) update(ex *pipeline.Exchange) (*pipeline.Response, error) {
	params, err := pipeline.BindParams[IndexParams](ex)
	if err != nil {
		return nil, err
	}

	// The body passed validation against UpdateContactRequest, so only
	// declared keys are present.
	patch := store.ContactPatch{}
	if body, ok := ex.Body.(map[string]any); ok {
		for k, v := range body {
			patch[k] = v
		}
	}

	updated, err := h.contacts.Update(ex.Context(), params.Index, patch)
	if err != nil {
		return nil, err
	}
	return pipeline.JSON(http.StatusOK, updated), nil
}
