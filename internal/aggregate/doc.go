// Package aggregate implements the Result Aggregator: a pure reduction of
// a list of per-call model.Outcomes, over a fixed duration, into a
// model.ConcurrencyTestResult.
package aggregate
