// shelfctl is a terminal front end for the book-collection API. It keeps
// the same refresh behavior as the web client: list output always comes
// from a fresh fetch of the current page after a mutation.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/AP-Porag/book-management-app/internal/client"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	baseURL := os.Getenv("SHELF_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	api := client.New(baseURL)
	if token, err := os.ReadFile(tokenPath()); err == nil {
		api.SetToken(string(token))
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		name := fs.String("name", "", "Display name")
		email := fs.String("email", "", "Email address")
		password := fs.String("password", "", "Password")
		_ = fs.Parse(os.Args[2:])
		sess, err := api.Register(ctx, *name, *email, *password)
		if err != nil {
			log.Fatalf("register: %v", err)
		}
		saveToken(sess.Token)
		fmt.Printf("Registered %s\n", sess.User.Email)

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "Email address")
		password := fs.String("password", "", "Password")
		_ = fs.Parse(os.Args[2:])
		sess, err := api.Login(ctx, *email, *password)
		if err != nil {
			log.Fatalf("login: %v", err)
		}
		saveToken(sess.Token)
		fmt.Printf("Logged in as %s\n", sess.User.Email)

	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		page := fs.Int("page", 1, "Page number")
		limit := fs.Int("limit", client.DefaultPageSize, "Page size")
		_ = fs.Parse(os.Args[2:])
		cache := client.NewPageCache(api, *limit)
		if err := cache.SetPage(ctx, *page); err != nil {
			log.Fatalf("list: %v", err)
		}
		printPage(cache)

	case "add":
		fs := flag.NewFlagSet("add", flag.ExitOnError)
		draft := draftFlags(fs)
		_ = fs.Parse(os.Args[2:])
		cache := client.NewPageCache(api, client.DefaultPageSize)
		created, err := cache.Add(ctx, *draft)
		if err != nil {
			log.Fatalf("add: %v", err)
		}
		fmt.Printf("Added %q (%s)\n", created.Title, created.ID)
		printPage(cache)

	case "edit":
		fs := flag.NewFlagSet("edit", flag.ExitOnError)
		id := fs.String("id", "", "Book id")
		draft := draftFlags(fs)
		_ = fs.Parse(os.Args[2:])
		fields := map[string]any{}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "title":
				fields["title"] = draft.Title
			case "author":
				fields["author"] = draft.Author
			case "genre":
				fields["genre"] = draft.Genre
			case "description":
				fields["description"] = draft.Description
			case "thumbnail":
				fields["thumbnail"] = draft.Thumbnail
			case "rating":
				fields["rating"] = draft.Rating
			case "year":
				fields["year"] = draft.Year
			case "short":
				fields["shortDescription"] = draft.ShortDescription
			}
		})
		cache := client.NewPageCache(api, client.DefaultPageSize)
		updated, err := cache.Edit(ctx, *id, fields)
		if err != nil {
			log.Fatalf("edit: %v", err)
		}
		fmt.Printf("Updated %q\n", updated.Title)
		printPage(cache)

	case "rm":
		fs := flag.NewFlagSet("rm", flag.ExitOnError)
		id := fs.String("id", "", "Book id")
		_ = fs.Parse(os.Args[2:])
		cache := client.NewPageCache(api, client.DefaultPageSize)
		if err := cache.Remove(ctx, *id); err != nil {
			log.Fatalf("rm: %v", err)
		}
		fmt.Println("Book removed successfully")
		printPage(cache)

	case "show":
		fs := flag.NewFlagSet("show", flag.ExitOnError)
		id := fs.String("id", "", "Book id")
		_ = fs.Parse(os.Args[2:])
		b, err := api.GetBook(ctx, *id)
		if err != nil {
			log.Fatalf("show: %v", err)
		}
		fmt.Printf("%s\nAuthor: %s\nGenre: %s\nYear: %s\nRating: %s\n%s\n",
			b.Title, b.Author, b.Genre, b.Year, b.Rating, b.Description)

	default:
		usage()
		os.Exit(2)
	}
}

func draftFlags(fs *flag.FlagSet) *client.BookDraft {
	d := &client.BookDraft{}
	fs.StringVar(&d.Title, "title", "", "Title")
	fs.StringVar(&d.Author, "author", "", "Author")
	fs.StringVar(&d.Genre, "genre", "", "Genre")
	fs.StringVar(&d.Description, "description", "", "Description")
	fs.StringVar(&d.Thumbnail, "thumbnail", "", "Thumbnail URL or data URI")
	fs.StringVar(&d.Rating, "rating", "", "Rating")
	fs.StringVar(&d.Year, "year", "", "Publication year")
	fs.StringVar(&d.ShortDescription, "short", "", "Short description")
	return d
}

func printPage(cache *client.PageCache) {
	fmt.Printf("Page %d/%d (%d books total)\n", cache.Page(), cache.TotalPages(), cache.Total())
	for _, b := range cache.Books() {
		fmt.Printf("  %s  %-30s %s\n", b.ID, b.Title, b.Author)
	}
}

func tokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shelfctl-token"
	}
	return filepath.Join(home, ".shelfctl-token")
}

func saveToken(token string) {
	if err := os.WriteFile(tokenPath(), []byte(token), 0o600); err != nil {
		log.Printf("warning: could not save token: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: shelfctl <command> [flags]

Commands:
  register  -name -email -password
  login     -email -password
  list      [-page] [-limit]
  add       -title [-author -genre -description -thumbnail -rating -year -short]
  edit      -id [field flags]
  rm        -id
  show      -id

The API base URL comes from SHELF_API_URL (default http://localhost:8080).`)
}
