package easycurl_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/adamwoolhether/easycurl"
	"github.com/adamwoolhether/easycurl/easy"
)

func ExampleNewHandle() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"msg":"hello"}`)
	}))
	defer ts.Close()

	var out bytes.Buffer

	h, err := easycurl.NewHandle(easy.WithStdout(&out))
	if err != nil {
		fmt.Println("build error:", err)
		return
	}
	defer h.Cleanup()

	h.Setopt(easy.OptURL, easy.String(ts.URL))

	if code := h.Perform(); code != easy.OK {
		fmt.Println("perform error:", easy.StrError(code))
		return
	}

	fmt.Println(out.String())
	// Output: {"msg":"hello"}
}
