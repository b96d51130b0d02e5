package search_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"scout/search"
)

var _ = Describe("Client", func() {
	It("sends an advanced-depth request with the fixed parameters", func() {
		var got search.Request
		var auth string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/search"))
			Expect(r.Method).To(Equal(http.MethodPost))
			auth = r.Header.Get("Authorization")
			Expect(json.NewDecoder(r.Body).Decode(&got)).To(Succeed())

			json.NewEncoder(w).Encode(search.Response{
				Answer: "synthesized",
				Results: []search.Result{
					{Title: "t", Content: "c", URL: "https://example.com"},
				},
			})
		}))
		defer srv.Close()

		client := search.NewClient("tvly-key", search.WithBaseURL(srv.URL))
		resp, err := client.Search(context.Background(), "weather in tokyo")
		Expect(err).NotTo(HaveOccurred())

		Expect(auth).To(Equal("Bearer tvly-key"))
		Expect(got.Query).To(Equal("weather in tokyo"))
		Expect(got.SearchDepth).To(Equal("advanced"))
		Expect(got.IncludeAnswer).To(BeTrue())
		Expect(got.IncludeRawContent).To(BeTrue())
		Expect(got.MaxResults).To(Equal(5))
		Expect(got.Timeframe).To(Equal("year"))

		Expect(resp.Answer).To(Equal("synthesized"))
		Expect(resp.Results).To(HaveLen(1))
	})

	It("surfaces non-200 responses with the body excerpt", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("invalid api key"))
		}))
		defer srv.Close()

		client := search.NewClient("bad-key", search.WithBaseURL(srv.URL))
		_, err := client.Search(context.Background(), "anything")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("status 401"))
		Expect(err.Error()).To(ContainSubstring("invalid api key"))
	})

	It("respects context cancellation", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := search.NewClient("key", search.WithBaseURL(srv.URL))
		_, err := client.Search(ctx, "anything")
		Expect(err).To(HaveOccurred())
	})
})
