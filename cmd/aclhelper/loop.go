package main

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	aclhelper "github.com/maxb-odessa/aclhelper"
)

// runLoop reads one request per line from r, evaluates it against
// chain, and writes the verdict to w, the way the reference helper
// talks to a proxy's external_acl_type over a pair of pipes. With
// concurrency > 0 requests are dispatched to a bounded pool of
// worker goroutines and the proxy's own sequence id is echoed back
// so answers can arrive out of order; with concurrency == 0 there is
// no sequence id on either side of the protocol and requests are
// answered strictly in arrival order.
func runLoop(r io.Reader, w io.Writer, chain *aclhelper.Chain, concurrency int) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var writeMu sync.Mutex
	writeLine := func(line string) {
		writeMu.Lock()
		fmt.Fprintln(w, line)
		writeMu.Unlock()
	}

	if concurrency == 0 {
		for scanner.Scan() {
			tokens := decodeTokens(scanner.Text())
			verdict := chain.Call(tokens)
			writeLine(verdict.String())
		}
		return scanner.Err()
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for scanner.Scan() {
		line := scanner.Text()
		tokens := aclhelper.Tokenize(line)
		if len(tokens) == 0 {
			writeLine(aclhelper.Verdict{OK: false, Message: "empty request"}.String())
			continue
		}
		seqID := tokens[0]
		rest := decodeTokenSlice(tokens[1:])

		sem <- struct{}{}
		wg.Add(1)
		go func(seqID string, rest []string) {
			defer wg.Done()
			defer func() { <-sem }()
			verdict := chain.Call(rest)
			writeLine(fmt.Sprintf("%s %s", seqID, verdict))
		}(seqID, rest)
	}
	wg.Wait()

	return scanner.Err()
}

// decodeTokens tokenizes and URL-decodes a full request line with no
// leading sequence id.
func decodeTokens(line string) []string {
	return decodeTokenSlice(aclhelper.Tokenize(line))
}

func decodeTokenSlice(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = aclhelper.URLDecode(t)
	}
	return out
}
