package cart

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/beacondyn/beaconstore/internal/domain"
)

// Item is one cart line: a product snapshot plus a quantity.
type Item struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart holds the visitor's pending order. Lines keep insertion order;
// adding an already-present product bumps its quantity instead of
// appending a second line.
type Cart struct {
	Items []Item `json:"items"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add merges product into the cart: +1 on the existing line, or a new
// line with quantity 1.
func (c *Cart) Add(p domain.Product) {
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, Item{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	})
}

// Adjust changes a line's quantity by delta, clamped to a floor of 1.
// Dropping below one never removes the line; that is Remove's job.
func (c *Cart) Adjust(productID string, delta int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			q := c.Items[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			c.Items[i].Quantity = q
			return
		}
	}
}

// Remove deletes the line for productID, if present.
func (c *Cart) Remove(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Count is the total quantity across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Subtotal is the price-weighted quantity sum.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// CheckoutMessage renders the order summary sent on checkout.
func (c *Cart) CheckoutMessage(header, footer string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n--------------------------\n")
	for _, item := range c.Items {
		fmt.Fprintf(&b, "• %s [x%d] - $%s\n",
			item.Name, item.Quantity, formatMoney(item.Price*float64(item.Quantity)))
	}
	fmt.Fprintf(&b, "\n--------------------------\nTOTAL: $%s\n\n%s",
		formatMoney(c.Subtotal()), footer)
	return b.String()
}

// CheckoutLink builds the wa.me deep link carrying the order summary.
// The link is handed to the shopper's device; this process never calls it.
func (c *Cart) CheckoutLink(number, header, footer string) string {
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(c.CheckoutMessage(header, footer))
}

// formatMoney renders an amount with thousands separators and no
// trailing zeros, e.g. 1234.5 -> "1,234.5".
func formatMoney(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	intpart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intpart, frac = s[:i], s[i:]
	}
	neg := false
	if strings.HasPrefix(intpart, "-") {
		neg = true
		intpart = intpart[1:]
	}
	if len(intpart) > 3 {
		var groups []string
		for len(intpart) > 3 {
			groups = append([]string{intpart[len(intpart)-3:]}, groups...)
			intpart = intpart[:len(intpart)-3]
		}
		groups = append([]string{intpart}, groups...)
		intpart = strings.Join(groups, ",")
	}
	if neg {
		intpart = "-" + intpart
	}
	return intpart + frac
}
