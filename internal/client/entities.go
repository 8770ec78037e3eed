// ABOUTME: Knowledge entity types and CRUD calls for the admin surface
// ABOUTME: Pure pass-through; the backend owns all entity state

package client

import (
	"context"
	"time"
)

// FAQ is a frequently asked question with its curated answer.
type FAQ struct {
	ID        string    `json:"id,omitempty"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Department is a campus department contact record.
type Department struct {
	ID        string    `json:"id,omitempty"`
	Position  string    `json:"position"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Faculty is a staff member profile.
type Faculty struct {
	ID            string    `json:"id,omitempty"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Qualification string    `json:"qualification"`
	Bio           string    `json:"bio"`
	Office        string    `json:"office"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// Event is a campus event listing.
type Event struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Location    string    `json:"location"`
	Organizer   string    `json:"organizer"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Location is a campus location record.
type Location struct {
	ID        string    `json:"id,omitempty"`
	Floor     string    `json:"floor"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ListFAQs fetches all FAQs
func (c *Client) ListFAQs(ctx context.Context) ([]FAQ, error) {
	var faqs []FAQ
	if err := c.getJSON(ctx, "/api/faqs", &faqs); err != nil {
		return nil, err
	}
	return faqs, nil
}

// CreateFAQ creates a new FAQ
func (c *Client) CreateFAQ(ctx context.Context, faq FAQ) (*FAQ, error) {
	var created FAQ
	if err := c.postJSON(ctx, "/api/faqs", faq, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateFAQ updates an existing FAQ by id
func (c *Client) UpdateFAQ(ctx context.Context, id string, faq FAQ) (*FAQ, error) {
	var updated FAQ
	if err := c.putJSON(ctx, "/api/faqs/"+id, faq, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteFAQ removes a FAQ by id
func (c *Client) DeleteFAQ(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/faqs/"+id)
}

// ListDepartments fetches all departments
func (c *Client) ListDepartments(ctx context.Context) ([]Department, error) {
	var departments []Department
	if err := c.getJSON(ctx, "/api/departments", &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

// CreateDepartment creates a new department
func (c *Client) CreateDepartment(ctx context.Context, dept Department) (*Department, error) {
	var created Department
	if err := c.postJSON(ctx, "/api/departments", dept, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateDepartment updates an existing department by id
func (c *Client) UpdateDepartment(ctx context.Context, id string, dept Department) (*Department, error) {
	var updated Department
	if err := c.putJSON(ctx, "/api/departments/"+id, dept, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteDepartment removes a department by id
func (c *Client) DeleteDepartment(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/departments/"+id)
}

// ListFaculty fetches all faculty profiles
func (c *Client) ListFaculty(ctx context.Context) ([]Faculty, error) {
	var faculty []Faculty
	if err := c.getJSON(ctx, "/api/faculty", &faculty); err != nil {
		return nil, err
	}
	return faculty, nil
}

// CreateFaculty creates a new faculty profile
func (c *Client) CreateFaculty(ctx context.Context, f Faculty) (*Faculty, error) {
	var created Faculty
	if err := c.postJSON(ctx, "/api/faculty", f, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateFaculty updates an existing faculty profile by id
func (c *Client) UpdateFaculty(ctx context.Context, id string, f Faculty) (*Faculty, error) {
	var updated Faculty
	if err := c.putJSON(ctx, "/api/faculty/"+id, f, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteFaculty removes a faculty profile by id
func (c *Client) DeleteFaculty(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/faculty/"+id)
}

// ListEvents fetches all events
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := c.getJSON(ctx, "/api/events", &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CreateEvent creates a new event
func (c *Client) CreateEvent(ctx context.Context, e Event) (*Event, error) {
	var created Event
	if err := c.postJSON(ctx, "/api/events", e, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateEvent updates an existing event by id
func (c *Client) UpdateEvent(ctx context.Context, id string, e Event) (*Event, error) {
	var updated Event
	if err := c.putJSON(ctx, "/api/events/"+id, e, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteEvent removes an event by id
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/events/"+id)
}

// ListLocations fetches all campus locations
func (c *Client) ListLocations(ctx context.Context) ([]Location, error) {
	var locations []Location
	if err := c.getJSON(ctx, "/api/locations", &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// CreateLocation creates a new campus location
func (c *Client) CreateLocation(ctx context.Context, loc Location) (*Location, error) {
	var created Location
	if err := c.postJSON(ctx, "/api/locations", loc, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateLocation updates an existing location by id
func (c *Client) UpdateLocation(ctx context.Context, id string, loc Location) (*Location, error) {
	var updated Location
	if err := c.putJSON(ctx, "/api/locations/"+id, loc, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteLocation removes a location by id
func (c *Client) DeleteLocation(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/locations/"+id)
}
