package model

// Product is one row of the platform x quantity -> price lookup table.
// Price is in minor currency units; a price of exactly 0 designates the
// free-trial tier. "Not configured" is signaled by the repository, not by
// a sentinel price.
type Product struct {
	ID       int64  `json:"id,omitempty"`
	Platform string `json:"plataform"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}
