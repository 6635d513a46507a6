// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package samples provides a small set of example JSON documents.
package samples

import "sync"

var docs = [...]string{
	// A user profile.
	`{"name":"Alice Johnson","age":28,"email":"alice@example.com","isActive":true,"skills":["JavaScript","Python","Go"],"address":{"street":"123 Main St","city":"San Francisco","zipCode":"94105"}}`,

	// An e-commerce product.
	`{"id":"prod-001","title":"Wireless Bluetooth Headphones","price":89.99,"currency":"USD","inStock":true,"categories":["Electronics","Audio","Headphones"],"ratings":{"average":4.5,"count":127},"specifications":{"batteryLife":"30 hours","weight":"250g","colors":["black","white","blue"]}}`,

	// An API response with nested data.
	`{"success":true,"data":{"users":[{"id":1,"username":"dev_user","profile":{"firstName":"John","lastName":"Doe","avatar":"https://example.com/avatar1.jpg"},"metadata":{"lastLogin":"2025-01-13T10:30:00Z","permissions":["read","write"]}},{"id":2,"username":"admin","profile":{"firstName":"Jane","lastName":"Smith","avatar":"https://example.com/avatar2.jpg"},"metadata":{"lastLogin":"2025-01-13T09:15:00Z","permissions":["read","write","admin"]}}],"pagination":{"page":1,"limit":10,"total":2}},"timestamp":"2025-01-13T10:35:22Z"}`,

	// An application configuration.
	`{"application":{"name":"MyApp","version":"1.2.3","environment":"production"},"database":{"host":"localhost","port":5432,"name":"myapp_db","ssl":true},"cache":{"enabled":true,"ttl":3600,"provider":"redis"},"features":{"analytics":true,"notifications":false,"betaFeatures":["newUI","advancedSearch"]},"logging":{"level":"info","outputs":["console","file"]}}`,

	// A list of tasks.
	`[{"task":"Review pull requests","completed":false,"priority":"high"},{"task":"Update documentation","completed":true,"priority":"medium"},{"task":"Deploy to staging","completed":false,"priority":"low"}]`,
}

// Len reports the number of sample documents.
func Len() int { return len(docs) }

// Get returns the sample document at index i, modulo Len.
// Negative indices count backward from the end.
func Get(i int) string {
	i %= len(docs)
	if i < 0 {
		i += len(docs)
	}
	return docs[i]
}

// All returns a slice of all the sample documents, in order.
func All() []string { return append([]string(nil), docs[:]...) }

// A Cycle returns the sample documents in turn, wrapping around after the
// last. The zero value starts at the first document. A Cycle is safe for
// concurrent use.
type Cycle struct {
	mu   sync.Mutex
	next int
}

// Next returns the current document and advances c to the following one.
func (c *Cycle) Next() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc := docs[c.next]
	c.next = (c.next + 1) % len(docs)
	return doc
}

// Index reports the index of the document the next call to Next will return.
func (c *Cycle) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.next
}
