package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/platterhq/platter/domain"
)

func printFoods(w io.Writer, foods ...domain.Food) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tAVAILABLE\tDESCRIPTION")
	for _, food := range foods {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", food.ID, food.Name, food.Price, availability(food.Available), food.Description)
	}
	return tw.Flush()
}

func availability(available bool) string {
	if available {
		return "yes"
	}
	return "no"
}
