package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/markuplab/htmltok/tokenizer"
)

// Reads markup from stdin and dumps the token stream, one line per token,
// with parse errors interleaved at debug level.
func main() {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)

	in, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.WithError(err).Fatal("reading stdin")
	}

	z := tokenizer.New(string(in), tokenizer.WithErrorHandler(tokenizer.LogReporter(log)))
	for {
		tok, err := z.Next()
		if err != nil {
			log.WithError(err).Fatal("tokenizing")
		}
		fields := logrus.Fields{"type": tok.Type.String()}
		switch tok.Type {
		case tokenizer.CharacterToken, tokenizer.CommentToken:
			fields["data"] = tok.Data
		case tokenizer.StartTagToken, tokenizer.EndTagToken:
			fields["name"] = tok.Name
			if len(tok.Attributes) > 0 {
				fields["attributes"] = tok.Attributes
			}
			if tok.SelfClosing {
				fields["selfClosing"] = true
			}
		case tokenizer.DoctypeToken:
			fields["name"] = tok.Name
			if tok.HasPublicID {
				fields["publicId"] = tok.PublicID
			}
			if tok.HasSystemID {
				fields["systemId"] = tok.SystemID
			}
			if tok.ForceQuirks {
				fields["forceQuirks"] = true
			}
		}
		log.WithFields(fields).Info("token")
		if tok.Type == tokenizer.EndOfFileToken {
			return
		}
	}
}
