package sqlinline

// QEnsureSchema creates the tables used by brandkit when they are missing.
const QEnsureSchema = `--sql 5b9e0f2d-6c4a-4e1b-8f3d-2a7c9e1b4d60
create table if not exists integration_tokens (
  id uuid primary key,
  provider text not null unique,
  token text not null,
  properties jsonb not null default '{}'::jsonb,
  created_at timestamptz not null default now(),
  updated_at timestamptz not null default now()
);
create table if not exists brandbooks (
  id uuid primary key,
  name text not null,
  keywords text not null default '',
  source_logo_url text not null,
  slogan text not null,
  colors jsonb not null default '[]'::jsonb,
  fonts jsonb not null default '[]'::jsonb,
  icons jsonb not null default '[]'::jsonb,
  logo_variants jsonb not null default '[]'::jsonb,
  created_at timestamptz not null default now()
);
`
