package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"soapstone/contract"
	"soapstone/infrastructure/storage"
	"soapstone/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"
)

// inspect dumps the stored messages of a Badger directory as a table.
// It opens the database read-only so it can run next to a live API.
func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	owner := flag.String("owner", "", "Only show messages of this owner")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Message ID", "Owner", "Created", "Location", "Message"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	count := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(storage.KeyPrefix(contract.MessagesCollection))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			id := strings.TrimPrefix(string(item.Key()), string(prefix))

			err := item.Value(func(v []byte) error {
				source, err := storage.DecodeSource(v)
				if err != nil {
					fmt.Printf("Error decoding key %s: %v\n", string(item.Key()), err)
					return nil
				}
				message, err := services.ToStoredMessage(contract.Document{ID: id, Source: source})
				if err != nil {
					fmt.Printf("Error mapping key %s: %v\n", string(item.Key()), err)
					return nil
				}
				if *owner != "" && message.OwnerID != *owner {
					return nil
				}

				table.Append([]string{
					message.ID,
					message.OwnerID,
					message.CreatedAt.Format("2006-01-02 15:04:05"),
					message.Location.String(),
					message.Content.String(),
				})
				count++
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
	fmt.Printf("\n%d message(s)\n", count)
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
