package cache

import (
	"fmt"
	"net/url"
)

const (
	PrefixLeads     = "leads"
	PrefixProducts  = "products"
	PrefixDeals     = "deals"
	PrefixCustomers = "customers"
	PrefixDashboard = "dashboard"
	PrefixReports   = "reports"
)

// ListKey builds a canonical key from an entity prefix and its filter set.
// url.Values.Encode sorts, so equal filters always produce equal keys.
func ListKey(prefix string, query url.Values) string {
	if len(query) == 0 {
		return prefix
	}
	return prefix + "?" + query.Encode()
}

func DetailKey(prefix string, id int) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}

type Mutation string

const (
	MutationLead        Mutation = "lead"
	MutationLeadConvert Mutation = "lead_convert"
	MutationProduct     Mutation = "product"
	MutationDeal        Mutation = "deal"
)

// closures is the one place that says which cached entities a mutation
// poisons. A deal transition reaches well past deals: conversion flips a
// lead's status, activation can mint a customer, and the dashboard
// aggregates all of it. New mutations get a row here, never an ad-hoc
// invalidate call at the mutation site.
var closures = map[Mutation][]string{
	MutationLead:        {PrefixLeads, PrefixDashboard},
	MutationLeadConvert: {PrefixLeads, PrefixDeals, PrefixCustomers, PrefixDashboard},
	MutationProduct:     {PrefixProducts},
	MutationDeal:        {PrefixDeals, PrefixLeads, PrefixCustomers, PrefixDashboard},
}

// Closure exposes the invalidation set for a mutation class.
func Closure(m Mutation) []string {
	return closures[m]
}

// InvalidateMutation applies the mutation's full closure.
func (c *Cache) InvalidateMutation(m Mutation) {
	c.Invalidate(closures[m]...)
}
