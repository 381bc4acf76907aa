package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var errEmptyTitle = errors.New("title must not be empty")

// Posts prints every post, newest first.
func (a *App) Posts(ctx context.Context) error {
	posts, err := a.api.ListPosts(ctx)
	if err != nil {
		return err
	}

	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts yet")
		return nil
	}

	for _, p := range posts {
		fmt.Fprintf(a.out, "#%d %s (%s)\n", p.ID, p.Title, p.CreatedAt.Local().Format(time.DateTime))
		if p.Content != nil {
			for _, line := range strings.Split(*p.Content, "\n") {
				fmt.Fprintf(a.out, "    %s\n", line)
			}
		}
	}
	return nil
}

// AddPost prompts for a title and optional multi-line content.
func (a *App) AddPost(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	if title == "" {
		return errEmptyTitle
	}

	text, err := getMultiline(a.reader, "Enter content (optional)", a.out)
	if err != nil {
		return err
	}

	var content *string
	if text != "" {
		content = &text
	}

	post, err := a.api.CreatePost(ctx, title, content)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created post #%d\n", post.ID)
	return nil
}
