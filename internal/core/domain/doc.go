// Package domain contains the core types for Power BI dataset refresh
// operations: service principal credentials, refresh requests, refresh
// records returned by the service, and locally derived outcomes.
//
// Domain types depend on nothing outside the standard library.
package domain
