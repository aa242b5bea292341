// Package endpoint lists the subscription categories served by the API.
package endpoint

// Category is one housing type and the resource that serves it.
type Category struct {
	Label        string
	ResourcePath string
}

var categories = []Category{
	{Label: "아파트", ResourcePath: "getAPTLttotPblancDetail"},
	{Label: "오피스텔", ResourcePath: "getOFTLttotPblancDetail"},
	{Label: "도시형생활주택", ResourcePath: "getULHLttotPblancDetail"},
	{Label: "민간임대", ResourcePath: "getRentLttotPblancDetail"},
	{Label: "분양상가", ResourcePath: "getMMLttotPblancDetail"},
}

// All returns the categories in collection order. The returned slice is a copy.
func All() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)

	return out
}
