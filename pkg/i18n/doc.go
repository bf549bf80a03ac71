// Package i18n loads message catalogs and translates validator messages.
//
// Catalogs are YAML or JSON documents keyed by language, with nested keys
// addressed by dots:
//
//	de:
//	  validation:
//	    email: "Ungültige E-Mail-Adresse."
//	    less_than: "'%{value}' ist nicht kleiner als '%{max}'"
//
// Keys match the TranslationKey of validator messages. Templates keep the
// %{name} placeholders; the validator fills them in.
//
// # Usage
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewDirectoryAdapter(os.DirFS(dir), "."))
//	if err != nil {
//		return err
//	}
//	validator.SetTranslator(tr.ForLanguage(tr.Negotiate("de-CH, de;q=0.9")))
//
// Adapters read from memory (MapAdapter), a single file (FileAdapter) or a
// whole directory (DirectoryAdapter), each over an fs.FS so embedded catalogs
// work the same way as files on disk.
package i18n
