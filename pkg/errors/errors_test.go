package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "resample: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "resample: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			// 基本的なエラーメッセージの確認
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			// ModelError型にキャスト可能か確認
			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Predict", 10, 7, 0)

	// 基本的なエラーメッセージの確認
	want := "resample: Predict: dimension mismatch on axis 0 (rows). Expected 10, got 7"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// DimensionError型にキャスト可能か確認
	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("Regression", "Predict")

	// 基本的なエラーメッセージの確認
	want := "resample: Regression: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// NotFittedError型にキャスト可能か確認
	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewSpecError(t *testing.T) {
	err := NewSpecError("n", "must be at least 1", 0)

	// 基本的なエラーメッセージの確認
	want := "resample: invalid plan: parameter 'n': must be at least 1 (got: 0)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// SpecError型にキャスト可能か確認
	var specErr *SpecError
	if !As(err, &specErr) {
		t.Error("Error should be castable to *SpecError")
	}
	if specErr.Param != "n" {
		t.Errorf("Param = %v, want n", specErr.Param)
	}
}

func TestNewFitError(t *testing.T) {
	cause := ErrSingularMatrix
	err := NewFitError("ols", 17, cause)

	// 基本的なエラーメッセージの確認
	want := `resample: fit failed for model "ols" on resample 17: singular matrix`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// FitError型にキャスト可能か確認
	var fitErr *FitError
	if !As(err, &fitErr) {
		t.Error("Error should be castable to *FitError")
	}
	if fitErr.Model != "ols" || fitErr.Draw != 17 {
		t.Errorf("got Model=%v Draw=%v, want ols 17", fitErr.Model, fitErr.Draw)
	}

	// Unwrapで原因までたどれるか確認
	if !Is(err, ErrSingularMatrix) {
		t.Error("Expected Is(err, ErrSingularMatrix) to be true through FitError")
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("SetSpan", "span: -0.5 (must be in (0, 1])")

	want := "resample: SetSpan: span: -0.5 (must be in (0, 1])"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	// ValueError型にキャスト可能か確認
	var valErr *ValueError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValueError")
	}
}

func TestWarnHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(nil)

	Warn(NewSmallTestSetWarning(3, 100, 0.97))

	if captured == nil {
		t.Fatal("Expected warning handler to receive the warning")
	}
	var small *SmallTestSetWarning
	if !As(captured, &small) {
		t.Error("Warning should be castable to *SmallTestSetWarning")
	}
	if small.TestRows != 3 || small.Rows != 100 {
		t.Errorf("got TestRows=%d Rows=%d, want 3 100", small.TestRows, small.Rows)
	}
}

func TestDataConversionWarning(t *testing.T) {
	warn := NewDataConversionWarning("numeric", "categorical", "unparseable value at row 4")

	want := "data converted from numeric to categorical. Reason: unparseable value at row 4"
	if warn.Error() != want {
		t.Errorf("Error() = %v, want %v", warn.Error(), want)
	}
}

func TestWrapAndIs(t *testing.T) {
	// 元のエラー
	baseErr := ErrEmptyDataset

	// ラップ
	wrapped := Wrap(baseErr, "in Evaluator.Evaluate")

	// Is関数でチェック
	if !Is(wrapped, ErrEmptyDataset) {
		t.Error("Expected Is(wrapped, ErrEmptyDataset) to be true")
	}

	// エラーメッセージの確認
	if !strings.Contains(wrapped.Error(), "in Evaluator.Evaluate") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	// 元のエラー
	baseErr := ErrNoCoefficients

	// フォーマット付きラップ
	wrapped := Wrapf(baseErr, "in %s: model %q", "Bootstrap", "loess")

	// Is関数でチェック
	if !Is(wrapped, ErrNoCoefficients) {
		t.Error("Expected Is(wrapped, ErrNoCoefficients) to be true")
	}

	// エラーメッセージの確認
	expectedMsg := `in Bootstrap: model "loess"`
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestErrorChaining(t *testing.T) {
	// エラーチェーンの作成
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Operation", "failed", err2)

	// チェーン全体を確認
	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	// スタックトレースの確認（詳細表示）
	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}
