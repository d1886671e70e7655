package client

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/portal-api/internal/models"
)

const cartKey = "cart"

// ErrInvalidQuantity is returned when a cart quantity is below one.
var ErrInvalidQuantity = errors.New("client: quantity must be at least 1")

// CartItem is a product the shopper intends to buy. Price is a display copy;
// the server reprices every line at checkout.
type CartItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Cart is the locally persisted shopping cart. It does not check stock.
type Cart struct {
	items map[string]CartItem
	state *StateStore
}

// LoadCart restores the cart kept in state.
func LoadCart(state *StateStore) (*Cart, error) {
	cart := &Cart{items: map[string]CartItem{}, state: state}
	var saved []CartItem
	found, err := state.Load(cartKey, &saved)
	if err != nil {
		return nil, err
	}
	if found {
		for _, item := range saved {
			if item.ProductID != "" && item.Quantity > 0 {
				cart.items[item.ProductID] = item
			}
		}
	}
	return cart, nil
}

// Add puts quantity of product in the cart, on top of what is already there.
func (c *Cart) Add(product models.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	item, ok := c.items[product.ID]
	if !ok {
		item = CartItem{ProductID: product.ID, Name: product.Name, Price: product.Price, Image: product.Image}
	}
	item.Quantity += quantity
	c.items[product.ID] = item
	return c.save()
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	item, ok := c.items[productID]
	if !ok {
		return nil
	}
	if quantity <= 0 {
		delete(c.items, productID)
	} else {
		item.Quantity = quantity
		c.items[productID] = item
	}
	return c.save()
}

// Remove drops a line.
func (c *Cart) Remove(productID string) error {
	return c.SetQuantity(productID, 0)
}

// Clear empties the cart, typically after a successful order.
func (c *Cart) Clear() error {
	c.items = map[string]CartItem{}
	return c.save()
}

// Items returns the lines ordered by product name.
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name == items[j].Name {
			return items[i].ProductID < items[j].ProductID
		}
		return items[i].Name < items[j].Name
	})
	return items
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Total is the display total at the prices captured when items were added.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Checkout builds an order request from the cart.
func (c *Cart) Checkout(shipping models.ShippingInfo, payment PaymentInput) OrderInput {
	lines := make([]OrderLineInput, 0, len(c.items))
	for _, item := range c.Items() {
		lines = append(lines, OrderLineInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return OrderInput{Items: lines, ShippingInfo: shipping, PaymentInfo: payment}
}

func (c *Cart) save() error {
	return c.state.Save(cartKey, c.Items())
}
