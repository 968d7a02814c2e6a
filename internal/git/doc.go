// Package git materializes remote repositories on disk.
//
// It parses remote location URIs (GitHub style blob/tree URLs, plain
// repository URLs and scp-like addresses) into repository descriptors, and
// checks repositories out with go-git:
//
//	d, err := git.ParseRemoteLocation("https://github.com/org/repo/blob/main/catalog-info.yaml")
//	f := git.NewCloneFetcher(git.CloneFetcherOptions{Timeout: 5 * time.Minute})
//	res, err := f.Checkout(ctx, d.CloneURL(), d.Ref, dir)
package git
