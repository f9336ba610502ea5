// Package advisor implements the sales-advisor workspace: PIN login with
// session tokens, customer lookup, a task list, message templates and a
// performance dashboard, all served from an in-memory mock-data store.
package advisor

import "time"

// Loyalty tiers.
const (
	TierPlatinum = "Platinum"
	TierGold     = "Gold"
	TierSilver   = "Silver"
	TierBronze   = "Bronze"
)

// Message channels.
const (
	ChannelEmail    = "email"
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

// Task statuses.
const (
	TaskPending   = "pending"
	TaskCompleted = "completed"
)

// Advisor is the authenticated store employee.
type Advisor struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	StoreID       string  `json:"store_id"`
	StoreName     string  `json:"store_name"`
	MonthlyTarget float64 `json:"monthly_target"`
	MTDSales      float64 `json:"mtd_sales"`
	MTDOrders     int     `json:"mtd_orders"`
	Conversion    float64 `json:"conversion_rate"`
	NPSScore      float64 `json:"nps_score"`
}

// Purchase is one entry in a customer's purchase history.
type Purchase struct {
	Date        time.Time `json:"date"`
	SKU         string    `json:"sku"`
	ProductName string    `json:"product_name"`
	Amount      float64   `json:"amount"`
}

// Customer is a clienteling record.
type Customer struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email,omitempty"`
	Phone           string     `json:"phone"`
	LTV             float64    `json:"ltv"`
	LoyaltyTier     string     `json:"loyalty_tier"`
	PreferredBrands []string   `json:"preferred_brands"`
	Birthday        string     `json:"birthday,omitempty"`
	Anniversary     string     `json:"anniversary,omitempty"`
	DoNotDisturb    bool       `json:"do_not_disturb"`
	PurchaseHistory []Purchase `json:"purchase_history"`
}

// Task is an actionable item on the advisor's list.
type Task struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Description  string    `json:"description"`
	Priority     string    `json:"priority"`
	DueDate      time.Time `json:"due_date"`
	Status       string    `json:"status"`
}

// Template is a reusable outbound message template.
type Template struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Channel   string   `json:"channel"`
	Subject   string   `json:"subject,omitempty"`
	Body      string   `json:"body"`
	Variables []string `json:"variables"`
}

// Message is an outbound message sent from a template.
type Message struct {
	ID         string    `json:"id"`
	AdvisorID  string    `json:"advisor_id"`
	CustomerID string    `json:"customer_id"`
	TemplateID string    `json:"template_id"`
	Channel    string    `json:"channel"`
	Body       string    `json:"body"`
	Status     string    `json:"status"`
	SentAt     time.Time `json:"sent_at"`
}

// Metrics is the performance dashboard payload.
type Metrics struct {
	Target             float64 `json:"target"`
	Achieved           float64 `json:"achieved"`
	Variance           float64 `json:"variance"`
	PercentComplete    float64 `json:"percent_complete"`
	DailyRunRate       float64 `json:"daily_run_rate"`
	CommissionEstimate float64 `json:"commission_estimate"`
	Conversion         float64 `json:"conversion_rate"`
	NPSScore           float64 `json:"nps_score"`
	PendingTasks       int     `json:"pending_tasks"`
}
