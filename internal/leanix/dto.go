package leanix

import (
	"encoding/json"
	"strings"
)

// GraphQLRequest is the POST body of a pathfinder GraphQL call.
type GraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// GraphQLResponse is the envelope returned by the pathfinder endpoint.
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError is a single entry of the errors array.
type GraphQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// GraphQLErrors is returned when the endpoint answers 200 with an errors array.
type GraphQLErrors []GraphQLError

func (e GraphQLErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ge := range e {
		msgs[i] = ge.Message
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

// AllFactSheetsData is the data section of the architect subscription query.
type AllFactSheetsData struct {
	AllFactSheets struct {
		TotalCount int             `json:"totalCount"`
		Edges      []FactSheetEdge `json:"edges"`
	} `json:"allFactSheets"`
}

type FactSheetEdge struct {
	Node FactSheetNode `json:"node"`
}

// FactSheetNode is an IT component with its completion and subscriptions.
type FactSheetNode struct {
	ID            string                 `json:"id"`
	DisplayName   string                 `json:"displayName"`
	Completion    *CompletionDTO         `json:"completion"`
	Subscriptions SubscriptionConnection `json:"subscriptions"`
}

type CompletionDTO struct {
	Completion *float64 `json:"completion"`
	Percentage *float64 `json:"percentage"`
}

type SubscriptionConnection struct {
	Edges []SubscriptionEdge `json:"edges"`
}

type SubscriptionEdge struct {
	Node SubscriptionNode `json:"node"`
}

type SubscriptionNode struct {
	User  UserDTO   `json:"user"`
	Type  string    `json:"type"`
	Roles []RoleDTO `json:"roles"`
}

// UserDTO is a subscribed user. LastName is null for technical or invited users.
type UserDTO struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     string  `json:"email"`
}

type RoleDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Percentage returns the completion percentage of the node, nil when unknown.
func (n FactSheetNode) Percentage() *float64 {
	if n.Completion == nil {
		return nil
	}
	return n.Completion.Percentage
}
