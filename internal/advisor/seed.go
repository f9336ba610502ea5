package advisor

import "time"

// Seed data for the workspace. The original system drives this screen from a
// static dataset; the records here mirror that shape.

var seedAdvisor = Advisor{
	ID:            "adv-001",
	EmployeeID:    "EMP-4417",
	Name:          "Priya Nair",
	Email:         "priya.nair@chronora.example",
	StoreID:       "store-mumbai-01",
	StoreName:     "Chronora Flagship Mumbai",
	MonthlyTarget: 3_000_000,
	MTDSales:      2_150_000,
	MTDOrders:     14,
	Conversion:    22.5,
	NPSScore:      71,
}

func seedCustomers() []Customer {
	return []Customer{
		{
			ID:              "cust-001",
			Name:            "Arjun Mehta",
			Email:           "arjun.mehta@example.com",
			Phone:           "+91-98200-11223",
			LTV:             1_850_000,
			LoyaltyTier:     TierPlatinum,
			PreferredBrands: []string{"Chronora", "Rolex"},
			Birthday:        "1978-03-14",
			Anniversary:     "2005-11-28",
			PurchaseHistory: []Purchase{
				{Date: time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC), SKU: "WATCH-101", ProductName: "Meridian GMT", Amount: 249_900},
				{Date: time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC), SKU: "WATCH-044", ProductName: "Tide Diver", Amount: 129_900},
			},
		},
		{
			ID:              "cust-002",
			Name:            "Sofia D'Souza",
			Email:           "sofia.d@example.com",
			Phone:           "+91-98111-44556",
			LTV:             640_000,
			LoyaltyTier:     TierGold,
			PreferredBrands: []string{"Chronora"},
			Birthday:        "1989-09-02",
			PurchaseHistory: []Purchase{
				{Date: time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC), SKU: "WATCH-072", ProductName: "Solstice", Amount: 89_500},
			},
		},
		{
			ID:              "cust-003",
			Name:            "Rahul Kapoor",
			Phone:           "+91-99870-77889",
			LTV:             210_000,
			LoyaltyTier:     TierSilver,
			PreferredBrands: []string{"Atlas"},
			DoNotDisturb:    true,
			PurchaseHistory: []Purchase{},
		},
	}
}

func seedTasks() []Task {
	return []Task{
		{
			ID:           "task-001",
			Type:         "birthday",
			CustomerID:   "cust-002",
			CustomerName: "Sofia D'Souza",
			Description:  "Birthday this week — send wishes with the new Solstice collection",
			Priority:     "high",
			DueDate:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
			Status:       TaskPending,
		},
		{
			ID:           "task-002",
			Type:         "follow-up",
			CustomerID:   "cust-001",
			CustomerName: "Arjun Mehta",
			Description:  "Follow up on the Meridian GMT service appointment",
			Priority:     "medium",
			DueDate:      time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
			Status:       TaskPending,
		},
		{
			ID:           "task-003",
			Type:         "anniversary",
			CustomerID:   "cust-001",
			CustomerName: "Arjun Mehta",
			Description:  "Anniversary gifting window opens next month",
			Priority:     "low",
			DueDate:      time.Date(2026, 10, 28, 0, 0, 0, 0, time.UTC),
			Status:       TaskCompleted,
		},
	}
}

func seedTemplates() []Template {
	return []Template{
		{
			ID:        "tpl-001",
			Name:      "Birthday Wishes",
			Category:  "occasion",
			Channel:   ChannelWhatsApp,
			Body:      "Happy birthday, {{name}}! Celebrate with a private viewing of our latest arrivals.",
			Variables: []string{"name"},
		},
		{
			ID:        "tpl-002",
			Name:      "Service Follow-up",
			Category:  "followup",
			Channel:   ChannelEmail,
			Subject:   "How is your timepiece doing?",
			Body:      "Hi {{name}}, it has been a while since your last service. Shall we book a check-up?",
			Variables: []string{"name"},
		},
		{
			ID:        "tpl-003",
			Name:      "New Collection Preview",
			Category:  "promotional",
			Channel:   ChannelSMS,
			Body:      "{{name}}, the {{collection}} collection lands this Friday. Reply to reserve a viewing.",
			Variables: []string{"name", "collection"},
		},
	}
}
