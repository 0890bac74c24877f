// Package dataprocessing turns the compiled nuclear-properties CSV into the two
// normalized views consumed by the dashboard.
//
// # Architecture
//
// The package is organized into four components:
//
// 1. Schema: the typed set of fields and the source columns they map to
// 2. Parser: reads the delimited source file in a single read
// 3. Pipeline: drops artifact and uncertainty columns, log-transforms half-life,
// standardizes the five features and derives the shell-closure view
// 4. Analytics: descriptive statistics of a prepared view
//
// # Usage
//
//	views, err := dataprocessing.Prepare(ctx, "data/combined_data.csv", dataprocessing.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(views.Global().Len(), views.Local().Len())
//
// # Data Flow
//
//	CSV → Parser → frame → drop index → drop uncertainties → typed rows → log(half-life)
//	    → StandardScaler → Global table → n in [18, 30] → Local table
//
// # Error Handling
//
// Every failure aborts the run and no partial table is returned:
//
//	- *SourceUnavailableError when the file is missing or unreadable
//	- *MissingColumnError when a required column is absent
//	- *InvalidValueError when a cell cannot be used (non-positive half-life, bad number)
//
// # Immutability
//
// Tables and the fitted scaler are never mutated after Prepare returns. Accessors return
// copies, so the views can be shared by concurrent readers without locking.
package dataprocessing
