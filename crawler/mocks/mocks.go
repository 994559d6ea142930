// Package mock_crawler contains hand-maintained gomock doubles for
// the crawler package's URLGetter and PrivateNetworkDetector
// interfaces, in the shape mockgen would generate from
// crawler/interfaces.go.
package mock_crawler

import (
	"net/http"
	"reflect"

	"github.com/golang/mock/gomock"
)

// MockURLGetter is a mock of the URLGetter interface.
type MockURLGetter struct {
	ctrl     *gomock.Controller
	recorder *MockURLGetterMockRecorder
}

// MockURLGetterMockRecorder is the mock recorder for MockURLGetter.
type MockURLGetterMockRecorder struct {
	mock *MockURLGetter
}

// NewMockURLGetter creates a new mock instance.
func NewMockURLGetter(ctrl *gomock.Controller) *MockURLGetter {
	mock := &MockURLGetter{ctrl: ctrl}
	mock.recorder = &MockURLGetterMockRecorder{mock}

	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockURLGetter) EXPECT() *MockURLGetterMockRecorder {
	return m.recorder
}

// Get mocks base method.
func (m *MockURLGetter) Get(url string) (*http.Response, error) {
	m.ctrl.T.Helper()

	ret := m.ctrl.Call(m, "Get", url)
	ret0, _ := ret[0].(*http.Response)
	ret1, _ := ret[1].(error)

	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockURLGetterMockRecorder) Get(url interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockURLGetter)(nil).Get), url)
}

// MockPrivateNetworkDetector is a mock of the PrivateNetworkDetector interface.
type MockPrivateNetworkDetector struct {
	ctrl     *gomock.Controller
	recorder *MockPrivateNetworkDetectorMockRecorder
}

// MockPrivateNetworkDetectorMockRecorder is the mock recorder for MockPrivateNetworkDetector.
type MockPrivateNetworkDetectorMockRecorder struct {
	mock *MockPrivateNetworkDetector
}

// NewMockPrivateNetworkDetector creates a new mock instance.
func NewMockPrivateNetworkDetector(ctrl *gomock.Controller) *MockPrivateNetworkDetector {
	mock := &MockPrivateNetworkDetector{ctrl: ctrl}
	mock.recorder = &MockPrivateNetworkDetectorMockRecorder{mock}

	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPrivateNetworkDetector) EXPECT() *MockPrivateNetworkDetectorMockRecorder {
	return m.recorder
}

// IsNetworkPrivate mocks base method.
func (m *MockPrivateNetworkDetector) IsNetworkPrivate(address string) (bool, error) {
	m.ctrl.T.Helper()

	ret := m.ctrl.Call(m, "IsNetworkPrivate", address)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)

	return ret0, ret1
}

// IsNetworkPrivate indicates an expected call of IsNetworkPrivate.
func (mr *MockPrivateNetworkDetectorMockRecorder) IsNetworkPrivate(address interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()

	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IsNetworkPrivate", reflect.TypeOf((*MockPrivateNetworkDetector)(nil).IsNetworkPrivate), address)
}
