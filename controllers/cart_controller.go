package controllers

import (
	"io"

	"github.com/gin-gonic/gin"

	"storefront/cart"
	"storefront/middleware"
	"storefront/models"
	"storefront/services"
)

const eventBuffer = 16

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// @Summary Get cart
// @Description Get the current cart lines, totals and drawer state
// @Tags Cart
// @Produce json
// @Param X-Cart-Session header string false "Cart session token"
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	respondOK(c, "Cart retrieved", ctrl.carts.GetCart(middleware.SessionID(c)))
}

// @Summary Add item to cart
// @Description Add one unit of a product in a size. Opens the cart drawer.
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Cart-Session header string false "Cart session token"
// @Param request body models.AddCartItemRequest true "Product and size"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "product_id and size are required", err)
		return
	}

	summary, err := ctrl.carts.AddItem(middleware.SessionID(c), req.ProductID, req.Size)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Item added to cart", summary)
}

// @Summary Update item quantity
// @Description Set the quantity of a cart line. A quantity below 1 removes the line.
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Cart-Session header string false "Cart session token"
// @Param productId path string true "Product ID"
// @Param size path string true "Size"
// @Param request body models.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/items/{productId}/{size} [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "quantity is required", err)
		return
	}

	summary := ctrl.carts.UpdateQuantity(middleware.SessionID(c), c.Param("productId"), c.Param("size"), *req.Quantity)
	respondOK(c, "Cart updated", summary)
}

// @Summary Remove item from cart
// @Tags Cart
// @Produce json
// @Param X-Cart-Session header string false "Cart session token"
// @Param productId path string true "Product ID"
// @Param size path string true "Size"
// @Success 200 {object} models.Response
// @Router /cart/items/{productId}/{size} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	summary := ctrl.carts.RemoveItem(middleware.SessionID(c), c.Param("productId"), c.Param("size"))
	respondOK(c, "Item removed from cart", summary)
}

// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Param X-Cart-Session header string false "Cart session token"
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	respondOK(c, "Cart cleared", ctrl.carts.ClearCart(middleware.SessionID(c)))
}

// @Summary Open cart drawer
// @Tags Cart
// @Produce json
// @Param X-Cart-Session header string false "Cart session token"
// @Success 200 {object} models.Response
// @Router /cart/open [post]
func (ctrl *CartController) OpenCart(c *gin.Context) {
	respondOK(c, "Cart opened", ctrl.carts.OpenCart(middleware.SessionID(c)))
}

// @Summary Close cart drawer
// @Tags Cart
// @Produce json
// @Param X-Cart-Session header string false "Cart session token"
// @Success 200 {object} models.Response
// @Router /cart/close [post]
func (ctrl *CartController) CloseCart(c *gin.Context) {
	respondOK(c, "Cart closed", ctrl.carts.CloseCart(middleware.SessionID(c)))
}

// @Summary Toggle cart drawer
// @Tags Cart
// @Produce json
// @Param X-Cart-Session header string false "Cart session token"
// @Success 200 {object} models.Response
// @Router /cart/toggle [post]
func (ctrl *CartController) ToggleCart(c *gin.Context) {
	respondOK(c, "Cart toggled", ctrl.carts.ToggleCart(middleware.SessionID(c)))
}

// @Summary Stream cart events
// @Description Server-sent events for every change to the session's cart. The first event is a snapshot.
// @Tags Cart
// @Produce text/event-stream
// @Param X-Cart-Session header string false "Cart session token"
// @Success 200 {object} cart.Event
// @Router /cart/events [get]
func (ctrl *CartController) StreamEvents(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	events := make(chan cart.Event, eventBuffer)

	unsubscribe := ctrl.carts.Subscribe(sessionID, latestEventSink(events))
	defer unsubscribe()

	c.SSEvent("snapshot", ctrl.carts.GetCart(sessionID))
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case ev := <-events:
			c.SSEvent(string(ev.Kind), ev)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// latestEventSink forwards events to ch without blocking. When ch is full the
// oldest queued event is dropped, so the newest cart state always reaches the
// reader. Deliveries for one store are serialized, so ch has a single sender.
func latestEventSink(ch chan cart.Event) cart.Listener {
	return func(ev cart.Event) {
		for {
			select {
			case ch <- ev:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	}
}
