package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Product is a single result from a live or fallback headphone lookup.
// Price is in VND; zero means the source listed none.
type Product struct {
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Description string `json:"description"`
}

// SearchClient looks up real headphone products through the Tavily search
// API. Without an API key it serves a built-in table of popular models, so
// callers always get an answer-shaped result.
type SearchClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewSearchClient(apiKey string) *SearchClient {
	return &SearchClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

const tavilyEndpoint = "https://api.tavily.com/search"

var searchDomains = []string{
	"gsmarena.com",
	"rtings.com",
	"thegioididong.com",
	"fptshop.com.vn",
	"cellphones.com.vn",
}

var priceRe = regexp.MustCompile(`(\d{1,3}(?:[.,]\d{3})*)\s*(?:đ|VND|USD|\$)`)

// SearchHeadphones returns up to limit products for a brand and type.
// Search failures degrade to an empty slice rather than an error; the chat
// flow treats missing context as acceptable.
func (c *SearchClient) SearchHeadphones(ctx context.Context, brand, productType string, limit int) []Product {
	if productType == "" {
		productType = "bluetooth"
	}
	if c.apiKey == "" {
		return fallbackProducts(brand, productType, limit)
	}

	query := brand + " " + productType + " headphones latest models 2024 2025"
	payload := map[string]any{
		"api_key":         c.apiKey,
		"query":           query,
		"max_results":     limit,
		"search_depth":    "advanced",
		"include_answer":  true,
		"include_domains": searchDomains,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilyEndpoint, bytes.NewReader(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil
	}

	var out struct {
		Results []struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil
	}

	products := make([]Product, 0, limit)
	for _, r := range out.Results {
		if len(products) >= limit {
			break
		}
		products = append(products, extractProduct(r.Title, r.Content))
	}
	return products
}

func extractProduct(title, content string) Product {
	name := strings.TrimSpace(title)
	if i := strings.Index(title, "|"); i >= 0 {
		name = strings.TrimSpace(title[:i])
	}

	var price int
	if m := priceRe.FindStringSubmatch(content); m != nil {
		raw := strings.NewReplacer(",", "", ".", "").Replace(m[1])
		if n, err := strconv.Atoi(raw); err == nil {
			price = n
		}
	}

	desc := content
	if len(desc) > 200 {
		desc = desc[:200]
	}
	return Product{Name: name, Price: price, Description: desc}
}

// fallbackProducts serves a curated table of current models per brand and
// type. An unknown type falls back to the brand's first listed type.
func fallbackProducts(brand, productType string, limit int) []Product {
	byType, ok := fallbackCatalog[strings.ToLower(brand)]
	if !ok {
		return nil
	}
	products, ok := byType[strings.ToLower(productType)]
	if !ok {
		primary := fallbackPrimaryType[strings.ToLower(brand)]
		if primary == "" {
			primary = "bluetooth"
		}
		products = byType[primary]
	}
	if len(products) > limit {
		products = products[:limit]
	}
	return products
}

// fallbackPrimaryType names the type a brand defaults to when the requested
// one is not stocked; brands absent here default to bluetooth.
var fallbackPrimaryType = map[string]string{
	"asus": "gaming",
}

var fallbackCatalog = map[string]map[string][]Product{
	"samsung": {
		"bluetooth": {
			{Name: "Samsung Galaxy Buds 3 Pro", Price: 5490000, Description: "ANC cao cấp, âm thanh Hi-Fi"},
			{Name: "Samsung Galaxy Buds 2 Pro", Price: 4490000, Description: "ANC 360 Audio, IPX7"},
			{Name: "Samsung Galaxy Buds FE", Price: 2490000, Description: "Giá rẻ, ANC tốt"},
		},
		"wireless": {
			{Name: "Samsung Galaxy Buds 3 Pro", Price: 5490000, Description: "ANC cao cấp"},
			{Name: "Samsung Galaxy Buds Live", Price: 2990000, Description: "Thiết kế Bean độc đáo"},
		},
	},
	"sony": {
		"bluetooth": {
			{Name: "Sony WH-1000XM5", Price: 8990000, Description: "ANC hàng đầu thế giới"},
			{Name: "Sony WF-1000XM5", Price: 6990000, Description: "True wireless cao cấp"},
			{Name: "Sony LinkBuds S", Price: 4490000, Description: "Nhẹ, ANC thông minh"},
		},
		"wireless": {
			{Name: "Sony WH-1000XM5", Price: 8990000, Description: "Over-ear ANC tốt nhất"},
			{Name: "Sony WH-CH720N", Price: 2990000, Description: "ANC giá rẻ"},
		},
		"gaming": {
			{Name: "Sony INZONE H9", Price: 7990000, Description: "Gaming wireless ANC"},
			{Name: "Sony INZONE H7", Price: 5990000, Description: "Gaming wireless"},
		},
	},
	"apple": {
		"bluetooth": {
			{Name: "Apple AirPods Pro 2 (USB-C)", Price: 6490000, Description: "ANC, Spatial Audio, USB-C"},
			{Name: "Apple AirPods 3", Price: 4990000, Description: "Spatial Audio, chống nước"},
			{Name: "Apple AirPods Max", Price: 13990000, Description: "Over-ear cao cấp nhất"},
		},
		"wireless": {
			{Name: "Apple AirPods Max", Price: 13990000, Description: "Over-ear premium"},
			{Name: "Apple AirPods Pro 2", Price: 6490000, Description: "In-ear ANC"},
		},
	},
	"asus": {
		"gaming": {
			{Name: "Asus ROG Delta S Wireless", Price: 5490000, Description: "Gaming wireless hi-res"},
			{Name: "Asus ROG Cetra True Wireless", Price: 3990000, Description: "Gaming TWS ANC"},
			{Name: "Asus ROG Delta S Animate", Price: 6990000, Description: "RGB AniMe Matrix"},
		},
		"bluetooth": {
			{Name: "Asus ROG Cetra True Wireless", Price: 3990000, Description: "Gaming TWS"},
		},
	},
	"jbl": {
		"bluetooth": {
			{Name: "JBL Tour Pro 2", Price: 5490000, Description: "Smart case touchscreen"},
			{Name: "JBL Live Pro 2", Price: 3990000, Description: "ANC, âm JBL Pro"},
			{Name: "JBL Tune 760NC", Price: 1990000, Description: "ANC giá rẻ"},
		},
		"wireless": {
			{Name: "JBL Quantum 910", Price: 6990000, Description: "Gaming wireless ANC"},
			{Name: "JBL Tour One M2", Price: 7490000, Description: "Over-ear ANC cao cấp"},
		},
	},
	"bose": {
		"bluetooth": {
			{Name: "Bose QuietComfort Ultra Earbuds", Price: 7990000, Description: "ANC tốt nhất"},
			{Name: "Bose QuietComfort Earbuds II", Price: 6490000, Description: "ANC cá nhân hóa"},
		},
		"wireless": {
			{Name: "Bose QuietComfort Ultra Headphones", Price: 9990000, Description: "Over-ear ANC premium"},
			{Name: "Bose 700", Price: 7990000, Description: "ANC + mic tốt"},
		},
	},
	"beats": {
		"bluetooth": {
			{Name: "Beats Studio Pro", Price: 7990000, Description: "ANC, USB-C, Hi-Res"},
			{Name: "Beats Fit Pro", Price: 4990000, Description: "ANC, chip H1"},
		},
		"wireless": {
			{Name: "Beats Studio Pro", Price: 7990000, Description: "Over-ear ANC"},
		},
	},
	"sennheiser": {
		"bluetooth": {
			{Name: "Sennheiser Momentum 4 Wireless", Price: 8990000, Description: "60h pin, ANC"},
			{Name: "Sennheiser Momentum True Wireless 3", Price: 5990000, Description: "Audiophile TWS"},
		},
		"wireless": {
			{Name: "Sennheiser Momentum 4 Wireless", Price: 8990000, Description: "60h pin"},
		},
	},
}
