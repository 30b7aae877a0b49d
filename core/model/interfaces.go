// Package model provides additional interfaces for the library's built-in
// regression models. This file complements the core capability interfaces in
// estimator.go.
package model

import (
	"github.com/YuminosukeSato/resample/dataset"
)

// Estimator is the minimal surface shared by the built-in models.
type Estimator interface {
	// IsFitted reports whether the model has been fitted.
	IsFitted() bool
}

// Scorer is the interface for fitted models that can score themselves
// against a dataset.
type Scorer interface {
	// Score returns the coefficient of determination R^2 on ds.
	Score(ds *dataset.Dataset) (float64, error)
}

// Regressor combines fitting state, prediction, and scoring. The built-in
// regression models satisfy it.
type Regressor interface {
	Estimator
	Fitted
	Scorer
}
