package crawler

import "net/http"

// URLGetter is implemented by types that can retrieve the content
// located at a URL. *http.Client satisfies this interface.
type URLGetter interface {
	Get(url string) (*http.Response, error)
}

// PrivateNetworkDetector is implemented by types that can check
// whether a host address belongs to a private network range.
type PrivateNetworkDetector interface {
	IsNetworkPrivate(address string) (bool, error)
}
