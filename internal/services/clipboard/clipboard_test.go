package clipboard

import (
	"errors"
	"testing"
)

func TestServiceCopy(testingInstance *testing.T) {
	writeFailure := errors.New("xclip exited")
	testCases := []struct {
		name          string
		service       *Service
		expectedError error
		expectedText  string
	}{
		{name: "writes text", service: &Service{}, expectedText: "# Codebase Context"},
		{name: "wraps write failure", service: &Service{}, expectedError: writeFailure},
		{name: "reports unsupported platform", service: &Service{unsupported: true}, expectedError: ErrUnsupported},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingInstance *testing.T) {
			var written string
			testCase.service.writeAll = func(text string) error {
				if testCase.expectedError != nil && !errors.Is(testCase.expectedError, ErrUnsupported) {
					return testCase.expectedError
				}
				written = text
				return nil
			}
			copyError := testCase.service.Copy("# Codebase Context")
			if testCase.expectedError != nil {
				if !errors.Is(copyError, testCase.expectedError) {
					testingInstance.Fatalf("expected %v, got %v", testCase.expectedError, copyError)
				}
				return
			}
			if copyError != nil {
				testingInstance.Fatalf("unexpected error: %v", copyError)
			}
			if written != testCase.expectedText {
				testingInstance.Fatalf("expected %q, got %q", testCase.expectedText, written)
			}
		})
	}
}
