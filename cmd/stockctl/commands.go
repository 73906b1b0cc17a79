package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/stock-almacenes/docs"
	"github.com/jhoicas/stock-almacenes/internal/application/inventory"
	"github.com/jhoicas/stock-almacenes/internal/application/usecase"
	"github.com/jhoicas/stock-almacenes/internal/domain/stockcsv"
	"github.com/jhoicas/stock-almacenes/internal/infrastructure/memory"
	"github.com/jhoicas/stock-almacenes/internal/infrastructure/postgres"
)

func (a *app) pool(cmd *cobra.Command) (*pgxpool.Pool, error) {
	return postgres.NewPool(cmd.Context(), a.cfg.DB)
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := a.pool(cmd)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := postgres.Migrate(cmd.Context(), pool)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "sin migraciones pendientes")
			}
			for _, name := range applied {
				fmt.Fprintln(cmd.OutOrStdout(), "aplicada", name)
			}
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Crea o renombra los almacenes por defecto",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := a.pool(cmd)
			if err != nil {
				return err
			}
			defer pool.Close()

			n, err := usecase.NewWarehouseUseCase(postgres.NewWarehouseRepository(pool)).
				Seed(cmd.Context(), usecase.DefaultWarehouses)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d almacenes al día\n", n)
			return nil
		},
	}
}

type ingestOptions struct {
	file    string
	almacen int64
	codigo  string
	dryRun  bool
}

func newIngestCmd(a *app) *cobra.Command {
	var opts ingestOptions
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Concilia un archivo de conteo contra la base de datos",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(opts.file)
			if err != nil {
				return err
			}
			var uc *inventory.IngestUseCase
			if opts.dryRun {
				if err := previewFile(cmd, content); err != nil {
					return err
				}
				if uc, err = dryRunIngest(cmd, a); err != nil {
					return err
				}
			} else {
				pool, err := a.pool(cmd)
				if err != nil {
					return err
				}
				defer pool.Close()
				uc = inventory.NewIngestUseCase(
					postgres.NewTxRunner(pool),
					postgres.NewWarehouseRepository(pool),
					nil,
					a.log,
				)
			}

			res, err := uc.Ingest(cmd.Context(), inventory.IngestInput{
				WarehouseID:   opts.almacen,
				WarehouseCode: opts.codigo,
				FileName:      filepath.Base(opts.file),
				Content:       content,
			})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVar(&opts.file, "file", "", "Archivo CSV (requerido)")
	cmd.Flags().Int64Var(&opts.almacen, "almacen", 0, "ID del almacén")
	cmd.Flags().StringVar(&opts.codigo, "codigo", "", "Código del almacén (ej. 0001-AGV)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Concilia contra un almacenamiento en memoria con los almacenes por defecto")
	_ = cmd.MarkFlagRequired("file")
	cmd.MarkFlagsMutuallyExclusive("almacen", "codigo")
	return cmd
}

// dryRunIngest arma la ingesta sobre un store en memoria sembrado con DefaultWarehouses.
func dryRunIngest(cmd *cobra.Command, a *app) (*inventory.IngestUseCase, error) {
	store := memory.NewStore()
	if _, err := usecase.NewWarehouseUseCase(store.Warehouses()).Seed(cmd.Context(), usecase.DefaultWarehouses); err != nil {
		return nil, err
	}
	return inventory.NewIngestUseCase(store.TxRunner(), store.Warehouses(), nil, a.log), nil
}

// previewFile muestra formato, almacén detectado y registros sin conectarse a la BD.
func previewFile(cmd *cobra.Command, content []byte) error {
	text, err := stockcsv.Decode(content)
	if err != nil {
		return err
	}
	format, records, err := stockcsv.Parse(text)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "formato:", format)
	if code, ok := stockcsv.DetectWarehouseCode(text); ok {
		fmt.Fprintln(out, "almacén:", code)
	}
	n := 0
	for rec := range records {
		n++
		fmt.Fprintf(out, "%s\t%d\t%s\n", rec.SKU, rec.Quantity, rec.Description)
	}
	fmt.Fprintf(out, "%d registros\n", n)
	return nil
}

func newSwaggerCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "swagger",
		Short: "Escribe el OpenAPI registrado en un archivo",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := docs.SwaggerInfo.ReadDoc()
			if !json.Valid([]byte(doc)) {
				return errors.New("documento OpenAPI inválido")
			}
			return os.WriteFile(out, []byte(doc+"\n"), 0o644)
		},
	}
	cmd.Flags().StringVar(&out, "out", "docs/swagger.json", "Archivo de salida")
	return cmd
}
