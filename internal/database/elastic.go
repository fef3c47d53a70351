package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/olivere/elastic/v7"
)

// EmployeeDoc is the search projection of an employee kept in Elasticsearch.
type EmployeeDoc struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	HireDate  time.Time `json:"hire_date"`
}

const employeeIndexName = "employees"

// EmployeeIndex wraps the olivere/elastic client for the employee search
// feature. A nil *EmployeeIndex is valid and turns every method into a no-op,
// so the feature stays inert when no Elasticsearch URL is configured.
type EmployeeIndex struct {
	client *elastic.Client
}

func NewEmployeeIndex(url string) (*EmployeeIndex, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
	)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return &EmployeeIndex{client: client}, nil
}

// Enabled reports whether the search index is configured.
func (ei *EmployeeIndex) Enabled() bool {
	return ei != nil && ei.client != nil
}

// Index upserts one employee document, keyed by employee id.
func (ei *EmployeeIndex) Index(ctx context.Context, doc EmployeeDoc) error {
	if !ei.Enabled() {
		return nil
	}
	_, err := ei.client.Index().
		Index(employeeIndexName).
		Id(strconv.FormatInt(doc.ID, 10)).
		BodyJson(doc).
		Refresh("true").
		Do(ctx)
	if err != nil {
		return fmt.Errorf("index employee %d: %w", doc.ID, err)
	}
	return nil
}

// Remove deletes one employee document; a missing document is not an error.
func (ei *EmployeeIndex) Remove(ctx context.Context, id int64) error {
	if !ei.Enabled() {
		return nil
	}
	_, err := ei.client.Delete().
		Index(employeeIndexName).
		Id(strconv.FormatInt(id, 10)).
		Refresh("true").
		Do(ctx)
	if elastic.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove employee %d from index: %w", id, err)
	}
	return nil
}

// Search runs a full-text match over first name, last name and email.
func (ei *EmployeeIndex) Search(ctx context.Context, q string, size int) ([]EmployeeDoc, error) {
	if !ei.Enabled() {
		return nil, nil
	}

	result, err := ei.client.Search().
		Index(employeeIndexName).
		Query(elastic.NewMultiMatchQuery(q, "first_name", "last_name", "email")).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}

	docs := make([]EmployeeDoc, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		var doc EmployeeDoc
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
