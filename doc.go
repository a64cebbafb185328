// Package pnlreport computes the profit and loss of a portfolio snapshot and
// prepares everything needed to publish it as a report.
//
// A report run is a pipeline of pure functions:
//   - Normalize validates raw position records (symbol, quantity, unit cost,
//     unit price) and keeps the last record of each symbol.
//   - Analyze computes per position and aggregated P&L, split by long and
//     short side.
//   - EvaluateScenarios compares what-if totals against the baseline.
//   - Assess gathers the data-quality findings of the run.
//   - Narrate writes a short deterministic commentary.
//   - Assemble merges the results into a ReportContext, preferring externally
//     supplied texts over generated ones.
//
// Build chains them all. Loading inputs from workbooks, CSV and JSON files is
// done by LoadPositions, LoadScenarioSource and ReadText, and rendering is
// left to the renderer package.
package pnlreport
