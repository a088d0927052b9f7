package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"plume/contexts/publishing/post-service/adapters/memory"
	"plume/contexts/publishing/post-service/domain/entities"
	domainerrors "plume/contexts/publishing/post-service/domain/errors"
)

func newPostFixture() (PostUseCase, *memory.Store) {
	store := memory.NewStore(nil)
	store.SetNow(time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))
	return PostUseCase{Posts: store, Clock: store, IDGen: store}, store
}

func TestCreatePollSkipsBlankOptionSlots(t *testing.T) {
	useCase, store := newPostFixture()
	ctx := context.Background()

	post, err := useCase.CreatePost(ctx, CreatePostCommand{
		AuthorID:    "author-1",
		Type:        entities.PostTypePoll,
		Title:       "Best color?",
		MaxChoices:  1,
		OptionTexts: []string{"Red", "Blue", "", "Green"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	options, err := store.ListOptions(ctx, post.PostID)
	if err != nil {
		t.Fatalf("list options failed: %v", err)
	}
	if len(options) != 3 {
		t.Fatalf("expected blank slot skipped, got %d options", len(options))
	}
	texts := []string{options[0].Text, options[1].Text, options[2].Text}
	expected := []string{"Red", "Blue", "Green"}
	for i := range expected {
		if texts[i] != expected[i] {
			t.Fatalf("expected options %v in order, got %v", expected, texts)
		}
	}
	if options[2].Position != 2 {
		t.Fatalf("expected compacted positions, got %d", options[2].Position)
	}
}

func TestCreatePollRejectsAllBlankOptions(t *testing.T) {
	useCase, _ := newPostFixture()

	_, err := useCase.CreatePost(context.Background(), CreatePostCommand{
		AuthorID:    "author-1",
		Type:        entities.PostTypePoll,
		Title:       "Best color?",
		OptionTexts: []string{"", "   ", ""},
	})
	if !errors.Is(err, domainerrors.ErrOptionsRequired) {
		t.Fatalf("expected options required, got %v", err)
	}
}

func TestCreatePollIgnoresExtraOptionSlots(t *testing.T) {
	useCase, store := newPostFixture()
	ctx := context.Background()

	post, err := useCase.CreatePost(ctx, CreatePostCommand{
		AuthorID:    "author-1",
		Type:        entities.PostTypePoll,
		Title:       "Too many",
		OptionTexts: []string{"A", "B", "C", "D", "E", "F"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	options, err := store.ListOptions(ctx, post.PostID)
	if err != nil {
		t.Fatalf("list options failed: %v", err)
	}
	if len(options) != MaxPollOptionSlots {
		t.Fatalf("expected %d options, got %d", MaxPollOptionSlots, len(options))
	}
}

func TestCreatePollDefaultsMaxChoices(t *testing.T) {
	useCase, _ := newPostFixture()

	post, err := useCase.CreatePost(context.Background(), CreatePostCommand{
		AuthorID:    "author-1",
		Type:        entities.PostTypePoll,
		Title:       "Best color?",
		MaxChoices:  0,
		OptionTexts: []string{"Red", "Blue"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.MaxChoices != 1 {
		t.Fatalf("expected max choices to default to 1, got %d", post.MaxChoices)
	}
}

func TestCreatePostSlugProbing(t *testing.T) {
	useCase, _ := newPostFixture()
	ctx := context.Background()

	slugs := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		post, err := useCase.CreatePost(ctx, CreatePostCommand{
			AuthorID: "author-1",
			Type:     entities.PostTypeArticle,
			Title:    "Hello World",
			Content:  "body",
		})
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
		slugs = append(slugs, post.Slug)
	}
	expected := []string{"hello-world", "hello-world-2", "hello-world-3"}
	for i := range expected {
		if slugs[i] != expected[i] {
			t.Fatalf("expected slugs %v, got %v", expected, slugs)
		}
	}
}

func TestCreateStatusDropsTitleAndSlugsFallback(t *testing.T) {
	useCase, _ := newPostFixture()

	post, err := useCase.CreatePost(context.Background(), CreatePostCommand{
		AuthorID: "author-1",
		Type:     entities.PostTypeStatus,
		Title:    "should be ignored",
		Content:  "just checking in",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Title != "" {
		t.Fatalf("expected status title to be dropped, got %q", post.Title)
	}
	if post.Slug != "post" {
		t.Fatalf("expected fallback slug, got %q", post.Slug)
	}
}

func TestCreateArticleValidation(t *testing.T) {
	useCase, _ := newPostFixture()
	ctx := context.Background()

	_, err := useCase.CreatePost(ctx, CreatePostCommand{
		AuthorID: "author-1",
		Type:     entities.PostTypeArticle,
		Content:  "body",
	})
	if !errors.Is(err, domainerrors.ErrTitleRequired) {
		t.Fatalf("expected title required, got %v", err)
	}

	_, err = useCase.CreatePost(ctx, CreatePostCommand{
		AuthorID: "author-1",
		Type:     entities.PostTypeArticle,
		Title:    "Untitled",
	})
	if !errors.Is(err, domainerrors.ErrContentRequired) {
		t.Fatalf("expected content required, got %v", err)
	}

	_, err = useCase.CreatePost(ctx, CreatePostCommand{
		AuthorID: "author-1",
		Type:     entities.PostType("page"),
		Title:    "Untitled",
	})
	if !errors.Is(err, domainerrors.ErrInvalidPostType) {
		t.Fatalf("expected invalid post type, got %v", err)
	}
}

func TestEditPostAuthorOnly(t *testing.T) {
	useCase, _ := newPostFixture()
	ctx := context.Background()

	post, err := useCase.CreatePost(ctx, CreatePostCommand{
		AuthorID: "author-1",
		Type:     entities.PostTypeArticle,
		Title:    "Hello World",
		Content:  "body",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	title := "Hijacked"
	_, err = useCase.EditPost(ctx, EditPostCommand{
		Slug:        post.Slug,
		RequesterID: "someone-else",
		Title:       &title,
	})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for non-author, got %v", err)
	}
}

func TestEditPostKeepsSlugOnRename(t *testing.T) {
	useCase, _ := newPostFixture()
	ctx := context.Background()

	post, err := useCase.CreatePost(ctx, CreatePostCommand{
		AuthorID: "author-1",
		Type:     entities.PostTypeArticle,
		Title:    "Hello World",
		Content:  "body",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	title := "Completely New Title"
	updated, err := useCase.EditPost(ctx, EditPostCommand{
		Slug:        post.Slug,
		RequesterID: "author-1",
		Title:       &title,
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if updated.Title != title {
		t.Fatalf("expected title updated, got %q", updated.Title)
	}
	if updated.Slug != "hello-world" {
		t.Fatalf("expected slug stable across rename, got %q", updated.Slug)
	}
}

func TestEditPollReplacesOptions(t *testing.T) {
	useCase, store := newPostFixture()
	ctx := context.Background()

	post, err := useCase.CreatePost(ctx, CreatePostCommand{
		AuthorID:    "author-1",
		Type:        entities.PostTypePoll,
		Title:       "Best color?",
		OptionTexts: []string{"Red", "Blue"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	before, err := store.ListOptions(ctx, post.PostID)
	if err != nil {
		t.Fatalf("list options failed: %v", err)
	}

	_, err = useCase.EditPost(ctx, EditPostCommand{
		Slug:        post.Slug,
		RequesterID: "author-1",
		OptionTexts: []string{"Cyan", "Magenta", "Yellow"},
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	after, err := store.ListOptions(ctx, post.PostID)
	if err != nil {
		t.Fatalf("list options failed: %v", err)
	}
	if len(after) != 3 {
		t.Fatalf("expected 3 replacement options, got %d", len(after))
	}
	for _, oldOption := range before {
		for _, newOption := range after {
			if oldOption.OptionID == newOption.OptionID {
				t.Fatalf("expected replacement to mint fresh option ids")
			}
		}
	}
}

func TestEditPollWithoutOptionsLeavesThemAlone(t *testing.T) {
	useCase, store := newPostFixture()
	ctx := context.Background()

	post, err := useCase.CreatePost(ctx, CreatePostCommand{
		AuthorID:    "author-1",
		Type:        entities.PostTypePoll,
		Title:       "Best color?",
		OptionTexts: []string{"Red", "Blue"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	max := 2
	_, err = useCase.EditPost(ctx, EditPostCommand{
		Slug:        post.Slug,
		RequesterID: "author-1",
		MaxChoices:  &max,
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	options, err := store.ListOptions(ctx, post.PostID)
	if err != nil {
		t.Fatalf("list options failed: %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("expected options untouched, got %d", len(options))
	}
}

func TestDeletePostAuthorOnlyAndCascades(t *testing.T) {
	useCase, store := newPostFixture()
	ctx := context.Background()

	post, err := useCase.CreatePost(ctx, CreatePostCommand{
		AuthorID:    "author-1",
		Type:        entities.PostTypePoll,
		Title:       "Best color?",
		OptionTexts: []string{"Red", "Blue"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err = useCase.DeletePost(ctx, DeletePostCommand{Slug: post.Slug, RequesterID: "intruder"})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if err := useCase.DeletePost(ctx, DeletePostCommand{Slug: post.Slug, RequesterID: "author-1"}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := store.GetBySlug(ctx, post.Slug); !errors.Is(err, domainerrors.ErrPostNotFound) {
		t.Fatalf("expected post gone, got %v", err)
	}
	options, err := store.ListOptions(ctx, post.PostID)
	if err != nil {
		t.Fatalf("list options failed: %v", err)
	}
	if len(options) != 0 {
		t.Fatalf("expected cascaded option delete, got %d", len(options))
	}
}

func TestToggleLikeFlips(t *testing.T) {
	useCase, _ := newPostFixture()
	ctx := context.Background()

	post, err := useCase.CreatePost(ctx, CreatePostCommand{
		AuthorID: "author-1",
		Type:     entities.PostTypeStatus,
		Content:  "hello",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	result, err := useCase.ToggleLike(ctx, ToggleLikeCommand{Slug: post.Slug, UserID: "fan"})
	if err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if !result.Liked || result.Likes != 1 {
		t.Fatalf("expected first toggle to like, got %+v", result)
	}

	result, err = useCase.ToggleLike(ctx, ToggleLikeCommand{Slug: post.Slug, UserID: "fan"})
	if err != nil {
		t.Fatalf("unlike failed: %v", err)
	}
	if result.Liked || result.Likes != 0 {
		t.Fatalf("expected second toggle to unlike, got %+v", result)
	}
}

func TestAddCommentValidatesContent(t *testing.T) {
	useCase, _ := newPostFixture()
	ctx := context.Background()

	post, err := useCase.CreatePost(ctx, CreatePostCommand{
		AuthorID: "author-1",
		Type:     entities.PostTypeStatus,
		Content:  "hello",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = useCase.AddComment(ctx, AddCommentCommand{Slug: post.Slug, AuthorID: "reader", Content: "   "})
	if !errors.Is(err, domainerrors.ErrCommentRequired) {
		t.Fatalf("expected comment required, got %v", err)
	}

	comment, err := useCase.AddComment(ctx, AddCommentCommand{Slug: post.Slug, AuthorID: "reader", Content: "nice one"})
	if err != nil {
		t.Fatalf("comment failed: %v", err)
	}
	if comment.PostID != post.PostID || comment.Content != "nice one" {
		t.Fatalf("unexpected comment: %+v", comment)
	}
}

func TestSlugifyCollapsesPunctuation(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":      "hello-world",
		"  What's   next?  ": "what-s-next",
		"100% Go":            "100-go",
		"!!!":                "post",
	}
	for input, expected := range cases {
		if got := slugify(input); got != expected {
			t.Fatalf("slugify(%q) = %q, expected %q", input, got, expected)
		}
	}
}
