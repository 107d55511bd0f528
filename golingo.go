// Package golingo is a client for the Lingo.dev localization engine.
//
// Text, objects, string slices, chat transcripts and HTML documents are
// flattened into an ordered key/value payload, split into size-bounded
// chunks and sent to the API one chunk at a time. The translated chunks are
// merged and turned back into the shape of the input.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/golingo"
//	)
//
//	func main() {
//	    engine, err := golingo.NewEngine(golingo.EngineConfig{
//	        APIKey: os.Getenv("LINGODOTDEV_API_KEY"),
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    out, err := engine.LocalizeText(context.Background(), "Hello World",
//	        golingo.LocalizationParams{SourceLocale: "en", TargetLocale: "es"}, nil)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(out) // Hola Mundo
//	}
package golingo
