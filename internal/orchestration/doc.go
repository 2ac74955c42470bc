// Package orchestration runs requests on one or more digit widths
// concurrently and checks that the widths agree. It decouples evaluation
// from presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration
