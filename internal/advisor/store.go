package advisor

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/chronora/retailops/pkg/errors"
)

// commissionRate is the flat rate applied to month-to-date sales for the
// dashboard estimate.
const commissionRate = 0.035

// Store holds the advisor workspace data in memory. All methods are safe for
// concurrent use.
type Store struct {
	mu        sync.RWMutex
	advisor   Advisor
	customers []Customer
	tasks     []Task
	templates []Template
	messages  []Message
	now       func() time.Time
}

// NewStore creates a store populated with the seed dataset.
func NewStore() *Store {
	return &Store{
		advisor:   seedAdvisor,
		customers: seedCustomers(),
		tasks:     seedTasks(),
		templates: seedTemplates(),
		now:       time.Now,
	}
}

// Advisor returns the signed-in advisor profile.
func (s *Store) Advisor() Advisor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.advisor
}

// SearchCustomers matches name, phone or email as a case-insensitive
// substring. A blank query returns all customers.
func (s *Store) SearchCustomers(query string) []Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.TrimSpace(query)
	if query == "" {
		return append([]Customer(nil), s.customers...)
	}

	lower := strings.ToLower(query)
	matched := make([]Customer, 0)
	for _, c := range s.customers {
		if strings.Contains(strings.ToLower(c.Name), lower) ||
			strings.Contains(c.Phone, query) ||
			strings.Contains(strings.ToLower(c.Email), lower) {
			matched = append(matched, c)
		}
	}
	return matched
}

// GetCustomer returns a customer by id.
func (s *Store) GetCustomer(id string) (*Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if c.ID == id {
			cust := c
			return &cust, nil
		}
	}
	return nil, apperrors.NotFound("customer", id)
}

// ListTasks returns all tasks, pending first, then by due date.
func (s *Store) ListTasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := append([]Task(nil), s.tasks...)
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Status != tasks[j].Status {
			return tasks[i].Status == TaskPending
		}
		return tasks[i].DueDate.Before(tasks[j].DueDate)
	})
	return tasks
}

// CompleteTask marks a task completed.
func (s *Store) CompleteTask(id string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Status = TaskCompleted
			task := s.tasks[i]
			return &task, nil
		}
	}
	return nil, apperrors.NotFound("task", id)
}

// ListTemplates returns all message templates.
func (s *Store) ListTemplates() []Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Template(nil), s.templates...)
}

// SendMessage records an outbound message rendered from a template. The
// customer and template must exist; consent is honored via the customer's
// do-not-disturb flag.
func (s *Store) SendMessage(customerID, templateID, body string) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var customer *Customer
	for i := range s.customers {
		if s.customers[i].ID == customerID {
			customer = &s.customers[i]
			break
		}
	}
	if customer == nil {
		return nil, apperrors.NotFound("customer", customerID)
	}
	if customer.DoNotDisturb {
		return nil, apperrors.InvalidInput("customer has opted out of messages")
	}

	var template *Template
	for i := range s.templates {
		if s.templates[i].ID == templateID {
			template = &s.templates[i]
			break
		}
	}
	if template == nil {
		return nil, apperrors.NotFound("template", templateID)
	}

	if strings.TrimSpace(body) == "" {
		body = template.Body
	}

	msg := Message{
		ID:         uuid.New().String(),
		AdvisorID:  s.advisor.ID,
		CustomerID: customerID,
		TemplateID: templateID,
		Channel:    template.Channel,
		Body:       body,
		Status:     "sent",
		SentAt:     s.now(),
	}
	s.messages = append(s.messages, msg)
	return &msg, nil
}

// Messages returns all sent messages, newest last.
func (s *Store) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Message(nil), s.messages...)
}

// Metrics computes the performance dashboard from the advisor profile and
// the task list.
func (s *Store) Metrics() Metrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	target := s.advisor.MonthlyTarget
	achieved := s.advisor.MTDSales

	var percent float64
	if target > 0 {
		percent = achieved / target * 100
		if percent > 100 {
			percent = 100
		}
	}

	day := s.now().Day()
	if day == 0 {
		day = 1
	}

	pending := 0
	for _, t := range s.tasks {
		if t.Status == TaskPending {
			pending++
		}
	}

	return Metrics{
		Target:             target,
		Achieved:           achieved,
		Variance:           achieved - target,
		PercentComplete:    percent,
		DailyRunRate:       achieved / float64(day),
		CommissionEstimate: achieved * commissionRate,
		Conversion:         s.advisor.Conversion,
		NPSScore:           s.advisor.NPSScore,
		PendingTasks:       pending,
	}
}
