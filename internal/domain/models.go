package domain

type Product struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Code        string   `json:"code"`
	Price       float64  `json:"price"`
	Status      bool     `json:"status"`
	Stock       float64  `json:"stock"`
	Category    string   `json:"category"`
	Thumbnails  []string `json:"thumbnails"`
}

type Cart struct {
	ID       int64      `json:"id"`
	Products []CartItem `json:"products"`
}

type CartItem struct {
	ProductID int64   `json:"productId"`
	Quantity  float64 `json:"quantity"`
}
