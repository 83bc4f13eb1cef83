// Package showcase embeds the similarity-ranking demos in-process.
//
// Two rankers are exposed: word-overlap retrieval over a document catalog and
// cosine matching over patient preference vectors. Each ranker can be called
// directly, or through a staged run that reports labelled progress steps with a
// fixed pause between them before returning the ranked result.
//
//	c, err := showcase.New(showcase.WithStepDelay(200 * time.Millisecond))
//	if err != nil { ... }
//	defer c.Close()
//
//	ans, err := c.Ask(ctx, "remote work policy", func(i int, label string) {
//		fmt.Printf("[%d] %s\n", i, label)
//	})
package showcase
