package handler

import (
	"context"

	"github.com/deppfellow/items-api/internal/errs"
	"github.com/deppfellow/items-api/internal/middleware"
	"github.com/deppfellow/items-api/internal/model"
	"github.com/deppfellow/items-api/internal/server"
	"github.com/deppfellow/items-api/internal/service"
	"github.com/labstack/echo/v4"
)

// CreatedBody is the literal body of a successful POST /api/items.
const CreatedBody = "Created!"

// ItemsPath is where the item resource is mounted.
const ItemsPath = "/api/items"

type ItemHandler struct {
	Handler
	itemService *service.ItemService
}

func NewItemHandler(s *server.Server, itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{
		Handler:     NewHandler(s),
		itemService: itemService,
	}
}

// requestContext carries the request id down to the item events.
func requestContext(c echo.Context) context.Context {
	return service.WithRequestID(c.Request().Context(), middleware.GetRequestID(c))
}

// itemNotFound renders as a bare 404.
func itemNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Item not found", false, nil).WithEmptyBody()
}

// CreateItem answers 201 with a Location header pointing at the new item.
func (h *ItemHandler) CreateItem(c echo.Context, payload *model.CreateItemPayload) (string, error) {
	item, err := h.itemService.CreateItem(requestContext(c), payload)
	if err != nil {
		return "", err
	}

	c.Response().Header().Set(echo.HeaderLocation, ItemsPath+"/"+item.ID.String())
	return CreatedBody, nil
}

func (h *ItemHandler) ListItems(c echo.Context, _ *model.ListItemsPayload) ([]model.Item, error) {
	return h.itemService.GetAllItems(c.Request().Context())
}

func (h *ItemHandler) GetItem(c echo.Context, payload *model.ItemIDPayload) (*model.Item, error) {
	item, err := h.itemService.GetItem(c.Request().Context(), model.ItemID(payload.ID))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, itemNotFound()
	}
	return item, nil
}

func (h *ItemHandler) UpdateItem(c echo.Context, payload *model.UpdateItemPayload) error {
	found, err := h.itemService.UpdateItem(requestContext(c), payload)
	if err != nil {
		return err
	}
	if !found {
		return itemNotFound()
	}
	return nil
}

// DeleteItem answers 204 whether or not the item existed.
func (h *ItemHandler) DeleteItem(c echo.Context, payload *model.ItemIDPayload) error {
	deleted, err := h.itemService.DeleteItem(requestContext(c), model.ItemID(payload.ID))
	if err != nil {
		return err
	}

	middleware.GetLogger(c).Debug().
		Str("item_id", payload.ID).
		Bool("deleted", deleted).
		Msg("delete item")
	return nil
}
