// Package mysqlcat exposes MySQL databases to an embedding analytical
// engine: it caches the remote catalog, maps MySQL column types to
// host logical types, and turns host filter trees into remote
// predicates so scans ship less data.
//
// # Quick Start
//
// Attach to a database and read a table as Arrow records:
//
//	cat, err := mysqlcat.Attach(ctx, "host=db.example.com user=reader db=app", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cat.Close()
//
//	table, err := cat.Table(ctx, "", "orders")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reader, err := cat.Scan(ctx, table, []int{0, 1, 2}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Release()
//
//	for {
//	    rec, err := reader.Next()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    process(rec)
//	    rec.Release()
//	}
//
// The connection string uses key=value pairs (host, port, user,
// passwd, db, socket, workload); unset keys fall back to the usual
// MYSQL_* environment variables.
package mysqlcat
