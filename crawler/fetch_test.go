package crawler

import (
	"io"
	"net/http"
	"strings"

	"github.com/golang/mock/gomock"
	check "gopkg.in/check.v1"

	mock_crawler "github.com/nicwatson/javasandcrawer/crawler/mocks"
	"github.com/nicwatson/javasandcrawer/urlnorm"

	"testing"
)

func Test(t *testing.T) { check.TestingT(t) }

var _ = check.Suite(new(fetchTestSuite))

type fetchTestSuite struct {
	urlGetter   *mock_crawler.MockURLGetter
	netDetector *mock_crawler.MockPrivateNetworkDetector
}

func (s *fetchTestSuite) SetUpTest(c *check.C) {
	ctrl := gomock.NewController(c)

	s.urlGetter = mock_crawler.NewMockURLGetter(ctrl)
	s.netDetector = mock_crawler.NewMockPrivateNetworkDetector(ctrl)
}

func (s *fetchTestSuite) TearDownTest(c *check.C) {
	s.urlGetter = nil
	s.netDetector = nil
}

func (s *fetchTestSuite) fetch(c *check.C, raw string) (fetchedPage, error) {
	u, err := urlnorm.Parse(raw)
	c.Assert(err, check.IsNil)

	proc := &fetchProcessor{getter: s.urlGetter, detector: s.netDetector}

	return proc.fetchAndParse(u)
}

func (s *fetchTestSuite) TestRefusesPrivateNetworkAddress(c *check.C) {
	s.netDetector.EXPECT().IsNetworkPrivate("169.254.169.254").Return(true, nil)

	_, err := s.fetch(c, "http://169.254.169.254/index.html")
	c.Assert(err, check.NotNil)

	var ioErr *FetchIOError
	c.Assert(err, check.FitsTypeOf, ioErr)
}

func (s *fetchTestSuite) TestNonOKStatusIsAnIOError(c *check.C) {
	s.netDetector.EXPECT().IsNetworkPrivate("example.com").Return(false, nil)
	s.urlGetter.EXPECT().Get("http://example.com/gone").Return(makeResponse(404, "not found"), nil)

	_, err := s.fetch(c, "http://example.com/gone")
	c.Assert(err, check.NotNil)
}

func (s *fetchTestSuite) TestSuccessfulFetchExtractsContent(c *check.C) {
	s.netDetector.EXPECT().IsNetworkPrivate("example.com").Return(false, nil)
	s.urlGetter.EXPECT().Get("http://example.com/index.html").Return(makeResponse(
		200, "<html><title>Hi</title><body><p>hello world</p></body></html>",
	), nil)

	page, err := s.fetch(c, "http://example.com/index.html")
	c.Assert(err, check.IsNil)
	c.Assert(page.title, check.Equals, "Hi")
	c.Assert(page.text, check.Equals, "hello world")
}

func (s *fetchTestSuite) TestNormalizesLineEndings(c *check.C) {
	c.Assert(normalizeLineEndings("a\r\nb\rc"), check.Equals, "a\nb\nc")
}

func makeResponse(code int, body string) *http.Response {
	resp := new(http.Response)
	resp.StatusCode = code
	resp.Body = io.NopCloser(strings.NewReader(body))

	return resp
}
