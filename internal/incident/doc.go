// Package incident provides the business boundary for Beacon's incident
// intake pipeline. It defines the Incident model, the Store interface
// (persistence), the Extractor interface (best-effort location
// enrichment), the Publisher interface (live fanout), and the Service
// that orchestrates validate, persist, enrich, publish per report.
package incident
