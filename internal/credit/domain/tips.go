package domain

// ImprovementTip suggests an action that raises the user's score.
type ImprovementTip struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Action      string `json:"action"`
	ActionRoute string `json:"actionRoute"`
}

// Tip trigger thresholds.
const (
	tipConnectionsBelow = 3
	tipProductsBelow    = 5
	tipConversionsBelow = 10
)

// BuildImprovementTips derives tips from the user's current counts, in
// fixed order.
func BuildImprovementTips(connections, products, conversions int) []ImprovementTip {
	tips := make([]ImprovementTip, 0, 3)

	if connections < tipConnectionsBelow {
		tips = append(tips, ImprovementTip{
			ID:          "connect-more",
			Title:       "Connect More Platforms",
			Description: "Connecting all your social accounts increases your credit score significantly.",
			Impact:      "high",
			Action:      "Connect now",
			ActionRoute: "/app/connect",
		})
	}

	if products < tipProductsBelow {
		tips = append(tips, ImprovementTip{
			ID:          "add-products",
			Title:       "Add More Products",
			Description: "Having more products in your shop shows affiliate commitment.",
			Impact:      "medium",
			Action:      "Browse products",
			ActionRoute: "/app/recommendations",
		})
	}

	if conversions < tipConversionsBelow {
		tips = append(tips, ImprovementTip{
			ID:          "drive-conversions",
			Title:       "Drive More Conversions",
			Description: "Share your shoplinks to generate sales and boost your credit score.",
			Impact:      "high",
			Action:      "View shoplinks",
			ActionRoute: "/app/shoplinks",
		})
	}

	return tips
}
