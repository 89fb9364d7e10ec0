package expenses

type DefaultCategory struct {
	Name  string
	Color string
}

// DefaultCategories are created for every new user.
var DefaultCategories = []DefaultCategory{
	{Name: "Food", Color: "#22c55e"},
	{Name: "Travel", Color: "#3b82f6"},
	{Name: "Rent", Color: "#f97316"},
	{Name: "Utilities", Color: "#eab308"},
	{Name: "Entertainment", Color: "#a855f7"},
	{Name: "Healthcare", Color: "#ef4444"},
	{Name: "Shopping", Color: "#ec4899"},
	{Name: "Other", Color: "#6b7280"},
}
