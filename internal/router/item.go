package router

import (
	"net/http"

	"github.com/deppfellow/items-api/internal/handler"
	"github.com/deppfellow/items-api/internal/model"
	"github.com/labstack/echo/v4"
)

func registerItemRoutes(r *echo.Echo, h *handler.Handlers) {
	items := r.Group(handler.ItemsPath)

	items.POST("", handler.HandleText(h.Item.Handler, h.Item.CreateItem, http.StatusCreated, &model.CreateItemPayload{}))
	items.GET("", handler.Handle(h.Item.Handler, h.Item.ListItems, http.StatusOK, &model.ListItemsPayload{}))
	items.GET("/:id", handler.Handle(h.Item.Handler, h.Item.GetItem, http.StatusOK, &model.ItemIDPayload{}))
	items.PUT("/:id", handler.HandleNoContent(h.Item.Handler, h.Item.UpdateItem, http.StatusNoContent, &model.UpdateItemPayload{}))
	items.DELETE("/:id", handler.HandleNoContent(h.Item.Handler, h.Item.DeleteItem, http.StatusNoContent, &model.ItemIDPayload{}))
}
