package index

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/helpdoc/core/markup"
)

func TestNamesSortedWithDuplicates(t *testing.T) {
	b := New()
	for _, name := range []string{"len", "Abs", "hasValue", "Abs", "Zip"} {
		b.Add(name)
	}
	assert.Equal(t, []string{"Abs", "Abs", "Zip", "hasValue", "len"}, b.Names())
}

func TestTopic(t *testing.T) {
	b := New()
	b.Add("b")
	b.Add("a")
	b.Add("b")

	topic := b.Topic("procedureIndex")
	assert.Equal(t, "procedureIndex", topic.ID)
	assert.Contains(t, topic.Body, "h1[<TITLE_PROCEDURE_INDEX>]")
	assert.Contains(t, topic.Body, "ul@li@p[a]@\nli@p[b]@\nli@p[b]@\n@")

	e := markup.New(markup.DefaultNames(), nil)
	plain, err := e.Rewrite(topic.Body, markup.TargetPlain)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(plain, "\x07 "))
	assert.Less(t, strings.Index(plain, "{a:procedure_a}"), strings.Index(plain, "{b:procedure_b}"))

	html, err := e.Rewrite(topic.Body, markup.TargetHTML)
	require.NoError(t, err)
	assert.Contains(t, html, `<ul><li><a href="procedure_a.html">a</a></li><li><a href="procedure_b.html">b</a></li>`)

	title, err := e.Title(topic.Body)
	require.NoError(t, err)
	assert.Equal(t, "Procedure Index", title)
}

func TestTopicEmpty(t *testing.T) {
	topic := New().Topic("procedureIndex")
	assert.NotContains(t, topic.Body, "ul@")

	_, err := markup.New(markup.DefaultNames(), nil).Rewrite(topic.Body, markup.TargetHTML)
	assert.NoError(t, err)
}

func TestAddConcurrent(t *testing.T) {
	b := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Add("p")
		}()
	}
	wg.Wait()
	assert.Len(t, b.Names(), 50)
}
