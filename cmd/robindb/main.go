package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/robindb/robindb/internal/catalog"
	"github.com/robindb/robindb/internal/file"
	"github.com/robindb/robindb/internal/plan"
	"github.com/robindb/robindb/internal/query"
	"github.com/robindb/robindb/internal/record"
	"github.com/robindb/robindb/internal/stats"
)

const (
	defaultDBDir     = "./robindb_data"
	defaultBlockSize = 4096
)

const usage = `commands:
  tables                                   list tables
  create <table> <col:type[:len]> ...      create a table (types: int, string)
  drop <table>                             drop a table
  insert <table> <value> ...               insert one row
  load <table> <file.csv>                  load rows from a csv file
  analyze                                  recompute statistics for all tables
  stats <table>                            show a table's statistics
  sel <table> <col> <op> <value>           estimate a predicate's selectivity
  cost <table>                             estimated full scan cost
  card <table> <selectivity>               estimated cardinality
  explain <table> [where <col> <op> <value> ...]
                                           cost and cardinality of a plan
  quit`

type shell struct {
	cat *catalog.Manager
	reg *stats.Registry
}

func main() {
	dir := flag.String("dir", defaultDBDir, "database directory")
	blockSize := flag.Int("blocksize", defaultBlockSize, "block size in bytes")
	flag.Parse()

	fm, err := file.NewManager(*dir, *blockSize)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer fm.Close()

	cat := catalog.NewManager(fm)
	sh := &shell{cat: cat, reg: stats.NewRegistry(cat, stats.CostPerPage)}

	rl, err := readline.New("robindb> ")
	if err != nil {
		log.Fatalf("readline: %v", err)
	}
	defer rl.Close()

	fmt.Println("robindb statistics shell; type 'help' for commands")
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		if err := sh.dispatch(strings.Fields(line)); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
}

func (sh *shell) dispatch(args []string) error {
	switch args[0] {
	case "help":
		fmt.Println(usage)
		return nil
	case "tables":
		for _, name := range sh.cat.TableNames() {
			fmt.Println(name)
		}
		return nil
	case "create":
		return sh.create(args[1:])
	case "drop":
		if len(args) != 2 {
			return fmt.Errorf("usage: drop <table>")
		}
		return sh.cat.DropTable(args[1])
	case "insert":
		return sh.insert(args[1:])
	case "load":
		return sh.load(args[1:])
	case "analyze":
		return sh.reg.RecomputeAll()
	case "stats":
		if len(args) != 2 {
			return fmt.Errorf("usage: stats <table>")
		}
		st, err := sh.reg.StatsFor(args[1])
		if err != nil {
			return err
		}
		fmt.Print(st.Describe())
		return nil
	case "sel":
		return sh.selectivity(args[1:])
	case "cost":
		if len(args) != 2 {
			return fmt.Errorf("usage: cost <table>")
		}
		st, err := sh.reg.StatsFor(args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%.0f\n", st.EstimateScanCost())
		return nil
	case "card":
		if len(args) != 3 {
			return fmt.Errorf("usage: card <table> <selectivity>")
		}
		sel, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("selectivity: %w", err)
		}
		st, err := sh.reg.StatsFor(args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%d\n", st.EstimateCardinality(sel))
		return nil
	case "explain":
		return sh.explain(args[1:])
	}
	return fmt.Errorf("unknown command %q (try 'help')", args[0])
}

// create parses "create <table> <col:type[:len]> ..." definitions.
func (sh *shell) create(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: create <table> <col:type[:len]> ...")
	}
	schema := record.NewSchema()
	for _, def := range args[1:] {
		parts := strings.Split(def, ":")
		switch {
		case len(parts) == 2 && parts[1] == "int":
			schema.AddIntColumn(parts[0])
		case len(parts) >= 2 && parts[1] == "string":
			length := 32
			if len(parts) == 3 {
				n, err := strconv.Atoi(parts[2])
				if err != nil {
					return fmt.Errorf("column %s: bad length: %w", parts[0], err)
				}
				length = n
			}
			schema.AddStringColumn(parts[0], length)
		default:
			return fmt.Errorf("bad column definition %q", def)
		}
	}
	_, err := sh.cat.CreateTable(args[0], schema)
	return err
}

func (sh *shell) insert(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: insert <table> <value> ...")
	}
	tbl, ok := sh.cat.Table(args[0])
	if !ok {
		return fmt.Errorf("unknown table %s", args[0])
	}
	columns := tbl.Schema().Columns()
	values := args[1:]
	if len(values) != len(columns) {
		return fmt.Errorf("table %s has %d columns, got %d values", args[0], len(columns), len(values))
	}

	ts, err := tbl.Open()
	if err != nil {
		return err
	}
	defer ts.Close()
	if err := ts.Insert(); err != nil {
		return err
	}
	for i, col := range columns {
		info, _ := tbl.Schema().Column(col)
		switch info.Type {
		case record.Integer:
			v, err := strconv.Atoi(values[i])
			if err != nil {
				return fmt.Errorf("column %s: %w", col, err)
			}
			if err := ts.SetInt(col, v); err != nil {
				return err
			}
		case record.Varchar:
			if err := ts.SetString(col, values[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (sh *shell) load(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: load <table> <file.csv>")
	}
	f, err := os.Open(args[1])
	if err != nil {
		return err
	}
	defer f.Close()
	n, err := sh.cat.LoadCSV(args[0], f)
	if err != nil {
		return err
	}
	fmt.Printf("loaded %d rows into %s\n", n, args[0])
	return nil
}

func (sh *shell) selectivity(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: sel <table> <col> <op> <value>")
	}
	st, err := sh.reg.StatsFor(args[0])
	if err != nil {
		return err
	}
	term, err := sh.parseTerm(args[0], args[1:4])
	if err != nil {
		return err
	}
	fmt.Printf("%.4f\n", st.EstimateSelectivity(term.Column(), term.Op(), term.Value()))
	return nil
}

func (sh *shell) explain(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: explain <table> [where <col> <op> <value> ...]")
	}
	tbl, ok := sh.cat.Table(args[0])
	if !ok {
		return fmt.Errorf("unknown table %s", args[0])
	}
	var p plan.Plan
	p, err := plan.NewTablePlan(tbl, sh.reg)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		if args[1] != "where" || (len(args)-2)%3 != 0 || len(args) == 2 {
			return fmt.Errorf("usage: explain <table> [where <col> <op> <value> ...]")
		}
		pred := query.NewPredicate()
		for i := 2; i < len(args); i += 3 {
			term, err := sh.parseTerm(args[0], args[i:i+3])
			if err != nil {
				return err
			}
			pred.Conjoin(term)
		}
		fmt.Printf("select %s from %s\n", pred, args[0])
		p = plan.NewSelectPlan(p, pred)
	}
	fmt.Printf("cost %.0f, cardinality %d\n", p.Cost(), p.Cardinality())
	return nil
}

// parseTerm builds "col op literal" with the literal typed by the
// column's declared type.
func (sh *shell) parseTerm(table string, args []string) (query.Term, error) {
	tbl, ok := sh.cat.Table(table)
	if !ok {
		return query.Term{}, fmt.Errorf("unknown table %s", table)
	}
	col, opText, lit := args[0], args[1], args[2]
	op, ok := query.ParseOperator(opText)
	if !ok {
		return query.Term{}, fmt.Errorf("unknown operator %q", opText)
	}
	info, ok := tbl.Schema().Column(col)
	if !ok {
		return query.Term{}, fmt.Errorf("unknown column %s.%s", table, col)
	}
	var value query.Constant
	switch info.Type {
	case record.Integer:
		v, err := strconv.Atoi(lit)
		if err != nil {
			return query.Term{}, fmt.Errorf("column %s is int: %w", col, err)
		}
		value = query.NewIntConstant(v)
	case record.Varchar:
		value = query.NewStringConstant(lit)
	}
	return query.NewTerm(col, op, value), nil
}
