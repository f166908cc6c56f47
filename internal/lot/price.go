package lot

import (
	"fmt"
	"math"
)

// Price is one variant's price in both representations the flow needs: the
// 6-decimal string the listing store stores and the rounded integer shown
// in previews.
type Price struct {
	Storage string
	Display int64
}

// VariantPrice derives a variant's price from the source lot's hourly rate:
// base * hours * (1 - discount/100).
func VariantPrice(basePerHour, hours, discountPct float64) Price {
	v := basePerHour * hours * (1 - discountPct/100)
	return Price{
		Storage: fmt.Sprintf("%.6f", v),
		Display: int64(math.Round(v)),
	}
}
