package main

import (
	"fmt"
	"log"

	"github.com/mdouchement/spacetime/internal/database"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
)

var codec string

func main() {
	c := &coral.Command{
		Use:   "purge DATABASE USER_ID",
		Short: "Remove all the memories of a user from the database",
		Args:  coral.ExactArgs(2),
		RunE: func(_ *coral.Command, args []string) error {
			//
			//
			fmt.Println("Opening", args[0])
			db, err := database.StormOpen(args[0], codec)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			// Fetch memories
			memories, err := db.FindMemoriesByUserID(args[1])
			if err != nil {
				return err
			}
			if len(memories) == 0 {
				fmt.Println("No memory for this user")
				return nil
			}
			fmt.Println("Memories found:", len(memories))

			// Delete memories
			if err = db.DeleteMemoriesByUserID(args[1]); err != nil {
				return err
			}
			fmt.Println("Memories removed")

			return nil
		},
	}
	c.Flags().StringVar(&codec, "codec", "msgpack", "Database codec")

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}
